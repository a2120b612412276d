package settlers

import (
	"math"
	"math/rand"
	"testing"
)

func TestGenerateBoard_TileCounts(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(1)))

	land, water, desert, numbered := 0, 0, 0, 0
	for _, tile := range b.Tiles {
		switch {
		case tile.Resource == Water:
			water++
		case tile.Resource == Desert:
			land++
			desert++
		default:
			land++
		}
		if tile.Number > 0 {
			numbered++
		}
	}
	if land != 19 {
		t.Errorf("expected 19 land tiles, got %d", land)
	}
	if water != 18 {
		t.Errorf("expected 18 water tiles, got %d", water)
	}
	if desert != 1 {
		t.Errorf("expected 1 desert, got %d", desert)
	}
	if numbered != 18 {
		t.Errorf("expected 18 numbered tiles, got %d", numbered)
	}
}

func TestGenerateBoard_RobberStartsOnDesert(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(2)))
	ri := b.RobberTile()
	if ri < 0 {
		t.Fatal("no robber on the board")
	}
	if b.Tiles[ri].Resource != Desert {
		t.Errorf("robber starts on %s, want desert", b.Tiles[ri].Resource)
	}
}

func TestGenerateBoard_GraphShape(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(3)))

	if len(b.Nodes) != 54 {
		t.Errorf("expected 54 nodes, got %d", len(b.Nodes))
	}
	if len(b.Edges) != 72 {
		t.Errorf("expected 72 edges, got %d", len(b.Edges))
	}

	for _, n := range b.Nodes {
		if len(n.Tiles) == 0 || len(n.Tiles) > 3 {
			t.Errorf("node %d touches %d tiles", n.ID, len(n.Tiles))
		}
		if len(b.EdgesAt(n.ID)) < 2 || len(b.EdgesAt(n.ID)) > 3 {
			t.Errorf("node %d has %d incident edges", n.ID, len(b.EdgesAt(n.ID)))
		}
	}
	for _, e := range b.Edges {
		if e.Owner != -1 {
			t.Errorf("edge %d starts owned by %d", e.ID, e.Owner)
		}
		if e.A == e.B {
			t.Errorf("edge %d is a self loop", e.ID)
		}
	}
}

// Corner positions computed from different tiles carry float residuals,
// sometimes on opposite sides of zero. Every physical corner must still
// collapse to a single node, and the graph shape must hold for any layout.
func TestGenerateBoard_CornersDeduplicated(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		b := generateBoard(rand.New(rand.NewSource(seed)))

		seen := make(map[[2]int]int)
		for _, n := range b.Nodes {
			k := [2]int{int(math.Round(n.X * 1000)), int(math.Round(n.Y * 1000))}
			if prev, ok := seen[k]; ok {
				t.Fatalf("seed %d: nodes %d and %d occupy the same corner (tiles %v vs %v)",
					seed, prev, n.ID, b.Nodes[prev].Tiles, n.Tiles)
			}
			seen[k] = n.ID
		}
		if len(b.Nodes) != 54 {
			t.Fatalf("seed %d: expected 54 nodes, got %d", seed, len(b.Nodes))
		}
		if len(b.Edges) != 72 {
			t.Fatalf("seed %d: expected 72 edges, got %d", seed, len(b.Edges))
		}
	}
}

func TestGenerateBoard_HarborSpacing(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(4)))

	var coords []HexCoord
	for _, tile := range b.Tiles {
		if tile.Harbor == nil {
			continue
		}
		if tile.Resource != Water {
			t.Errorf("harbor on non-water tile %d (%s)", tile.ID, tile.Resource)
		}
		coords = append(coords, tile.Coord)
	}
	if len(coords) == 0 {
		t.Fatal("no harbors placed")
	}
	if len(coords) > 9 {
		t.Errorf("placed %d harbors, at most 9 expected", len(coords))
	}
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			if HexDistance(coords[i], coords[j]) < 2 {
				t.Errorf("harbors at %v and %v closer than 2", coords[i], coords[j])
			}
		}
	}
}

func TestGenerateBoard_ShoreNodesInheritHarbors(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(5)))

	withHarbor := 0
	for _, n := range b.Nodes {
		withHarbor += len(n.Harbors)
		for _, h := range n.Harbors {
			if h.Ratio != 2 && h.Ratio != 3 {
				t.Errorf("node %d carries harbor with ratio %d", n.ID, h.Ratio)
			}
		}
	}
	if withHarbor == 0 {
		t.Error("no node inherited a harbor")
	}
}

func TestHexDistance(t *testing.T) {
	cases := []struct {
		a, b HexCoord
		want int
	}{
		{HexCoord{0, 0}, HexCoord{0, 0}, 0},
		{HexCoord{0, 0}, HexCoord{1, 0}, 1},
		{HexCoord{0, 0}, HexCoord{1, -1}, 1},
		{HexCoord{0, 0}, HexCoord{2, -1}, 2},
		{HexCoord{-2, 2}, HexCoord{2, -2}, 4},
	}
	for _, c := range cases {
		if got := HexDistance(c.a, c.b); got != c.want {
			t.Errorf("HexDistance(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestBoardClone_Independent(t *testing.T) {
	b := generateBoard(rand.New(rand.NewSource(6)))
	c := b.Clone()

	c.Nodes[0].Building = &Building{Owner: 0, Type: TownBuilding}
	c.Edges[0].Owner = 0
	c.Tiles[0].HasRobber = !c.Tiles[0].HasRobber

	if b.Nodes[0].Building != nil {
		t.Error("clone building leaked into original")
	}
	if b.Edges[0].Owner != -1 {
		t.Error("clone road leaked into original")
	}
	if b.Tiles[0].HasRobber == c.Tiles[0].HasRobber {
		t.Error("clone robber flag leaked into original")
	}
}
