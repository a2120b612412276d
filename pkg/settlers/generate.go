package settlers

import (
	"math"
	"math/rand"
)

const (
	landRadius  = 2
	waterRadius = 3
)

// landResources is the resource multiset assigned to the 19 land tiles.
var landResources = []Resource{
	Wood, Wood, Wood, Wood,
	Sheep, Sheep, Sheep, Sheep,
	Wheat, Wheat, Wheat, Wheat,
	Brick, Brick, Brick,
	Ore, Ore, Ore,
	Desert,
}

// numberTokens is the classic token multiset for the 18 non-desert land tiles.
var numberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// harborSet is the nine harbors placed on the outer water ring: five
// resource-specific 2:1 and four generic 3:1.
var harborSet = []Harbor{
	{Ratio: 2, Resource: Wood},
	{Ratio: 2, Resource: Brick},
	{Ratio: 2, Resource: Wheat},
	{Ratio: 2, Resource: Sheep},
	{Ratio: 2, Resource: Ore},
	{Ratio: 3},
	{Ratio: 3},
	{Ratio: 3},
	{Ratio: 3},
}

// generateBoard builds the full tile/node/edge graph: a radius-2 land area
// surrounded by a water ring, with shuffled resources, number tokens and
// harbors, the robber on the desert, and only buildable corners kept.
func generateBoard(rng *rand.Rand) *Board {
	b := &Board{}

	// Tiles: every hex within the water radius; land within the land radius.
	origin := HexCoord{0, 0}
	for q := -waterRadius; q <= waterRadius; q++ {
		for r := -waterRadius; r <= waterRadius; r++ {
			c := HexCoord{q, r}
			if HexDistance(origin, c) > waterRadius {
				continue
			}
			res := Water
			if HexDistance(origin, c) <= landRadius {
				res = Desert // placeholder, replaced by the shuffle below
			}
			b.Tiles = append(b.Tiles, Tile{ID: len(b.Tiles), Coord: c, Resource: res})
		}
	}

	// Assign shuffled resources and number tokens to the land tiles.
	resources := append([]Resource(nil), landResources...)
	rng.Shuffle(len(resources), func(i, j int) { resources[i], resources[j] = resources[j], resources[i] })
	numbers := append([]int(nil), numberTokens...)
	rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	ri, ni := 0, 0
	for i := range b.Tiles {
		if b.Tiles[i].Resource == Water {
			continue
		}
		b.Tiles[i].Resource = resources[ri]
		ri++
		if b.Tiles[i].Resource == Desert {
			b.Tiles[i].HasRobber = true
			continue
		}
		b.Tiles[i].Number = numbers[ni]
		ni++
	}

	placeHarbors(b, rng)
	buildGraph(b)
	return b
}

// placeHarbors puts the nine harbors on water tiles adjacent to land so that
// any two harbor tiles are at hex distance >= 2. When the spacing constraint
// leaves no valid slot, the remaining harbors are skipped.
func placeHarbors(b *Board, rng *rand.Rand) {
	coordTile := make(map[HexCoord]int, len(b.Tiles))
	for i, t := range b.Tiles {
		coordTile[t.Coord] = i
	}

	var candidates []int
	for i, t := range b.Tiles {
		if t.Resource != Water {
			continue
		}
		for _, nc := range t.Coord.Neighbors() {
			if j, ok := coordTile[nc]; ok && b.Tiles[j].Resource != Water {
				candidates = append(candidates, i)
				break
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	harbors := append([]Harbor(nil), harborSet...)
	rng.Shuffle(len(harbors), func(i, j int) { harbors[i], harbors[j] = harbors[j], harbors[i] })

	var placed []HexCoord
	hi := 0
	for _, ti := range candidates {
		if hi >= len(harbors) {
			break
		}
		ok := true
		for _, pc := range placed {
			if HexDistance(b.Tiles[ti].Coord, pc) < 2 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		h := harbors[hi]
		hi++
		b.Tiles[ti].Harbor = &h
		placed = append(placed, b.Tiles[ti].Coord)
	}
}

// buildGraph derives the node and edge sets from tile corners, inherits
// harbors onto shore nodes, and drops corners that touch only water.
func buildGraph(b *Board) {
	type rawNode struct {
		x, y  float64
		tiles []int
	}
	nodeIdx := make(map[[2]int]int)
	var raw []rawNode
	tileCorners := make([][6]int, len(b.Tiles))

	// Corners computed from different tiles land within a few ulps of each
	// other, sometimes on opposite sides of zero. Quantizing to integer
	// milli-units makes the key exact and folds -0 into 0.
	key := func(x, y float64) [2]int {
		return [2]int{int(math.Round(x * 1000)), int(math.Round(y * 1000))}
	}

	for ti := range b.Tiles {
		for k, c := range b.Tiles[ti].Coord.corners() {
			id, ok := nodeIdx[key(c[0], c[1])]
			if !ok {
				id = len(raw)
				nodeIdx[key(c[0], c[1])] = id
				raw = append(raw, rawNode{x: c[0], y: c[1]})
			}
			raw[id].tiles = append(raw[id].tiles, ti)
			tileCorners[ti][k] = id
		}
	}

	type rawEdge struct{ a, b int }
	edgeSeen := make(map[[2]int]bool)
	var rawEdges []rawEdge
	for ti := range b.Tiles {
		for k := 0; k < 6; k++ {
			a, bb := tileCorners[ti][k], tileCorners[ti][(k+1)%6]
			lo, hi := min(a, bb), max(a, bb)
			if edgeSeen[[2]int{lo, hi}] {
				continue
			}
			edgeSeen[[2]int{lo, hi}] = true
			rawEdges = append(rawEdges, rawEdge{lo, hi})
		}
	}

	// Keep only corners adjacent to at least one non-water tile; remap ids.
	remap := make([]int, len(raw))
	for i := range remap {
		remap[i] = -1
	}
	for i, rn := range raw {
		buildable := false
		for _, ti := range rn.tiles {
			if b.Tiles[ti].Resource != Water {
				buildable = true
				break
			}
		}
		if !buildable {
			continue
		}
		id := len(b.Nodes)
		remap[i] = id
		n := Node{ID: id, X: rn.x, Y: rn.y, Tiles: rn.tiles, CanBuild: true}
		for _, ti := range rn.tiles {
			if b.Tiles[ti].Resource == Water && b.Tiles[ti].Harbor != nil {
				n.Harbors = append(n.Harbors, *b.Tiles[ti].Harbor)
			}
		}
		b.Nodes = append(b.Nodes, n)
	}

	for _, re := range rawEdges {
		a, bb := remap[re.a], remap[re.b]
		if a < 0 || bb < 0 {
			continue
		}
		b.Edges = append(b.Edges, Edge{ID: len(b.Edges), A: a, B: bb, Owner: -1})
	}

	b.buildAdjacency()
}

// initialPlacement seats every player with two towns and one adjacent road.
// Candidate nodes must be buildable, not adjacent to the desert, and respect
// the distance rule against everything already placed.
func (g *Game) initialPlacement(rng *rand.Rand) {
	b := g.Board
	for _, p := range g.Players {
		var towns []int
		for range 2 {
			var candidates []int
			for _, n := range b.Nodes {
				if n.Building != nil || !n.CanBuild {
					continue
				}
				nextToDesert := false
				for _, ti := range n.Tiles {
					if b.Tiles[ti].Resource == Desert {
						nextToDesert = true
						break
					}
				}
				if nextToDesert {
					continue
				}
				blocked := false
				for _, nb := range b.NodeNeighbors(n.ID) {
					if b.Nodes[nb].Building != nil {
						blocked = true
						break
					}
				}
				if blocked {
					continue
				}
				candidates = append(candidates, n.ID)
			}
			if len(candidates) == 0 {
				break
			}
			pick := candidates[rng.Intn(len(candidates))]
			b.Nodes[pick].Building = &Building{Owner: p.ID, Type: TownBuilding}
			towns = append(towns, pick)
		}

		if len(towns) > 0 {
			home := towns[rng.Intn(len(towns))]
			edges := b.EdgesAt(home)
			var open []int
			for _, eid := range edges {
				if b.Edges[eid].Owner < 0 {
					open = append(open, eid)
				}
			}
			if len(open) > 0 {
				b.Edges[open[rng.Intn(len(open))]].Owner = p.ID
			}
		}
	}
	g.recomputeVP()
}
