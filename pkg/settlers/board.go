package settlers

import "math"

// HexCoord is an axial hex-grid coordinate. The implicit third cube
// coordinate is s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int { return -h.Q - h.R }

// hexDirections are the six axial neighbor offsets.
var hexDirections = [6]HexCoord{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var out [6]HexCoord
	for i, d := range hexDirections {
		out[i] = HexCoord{h.Q + d.Q, h.R + d.R}
	}
	return out
}

// HexDistance returns the hex-grid distance between two coordinates
// (max of the absolute cube-coordinate differences).
func HexDistance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return max(dq, max(dr, ds))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// center returns the pixel position of the hex center (pointy-top, unit size).
func (h HexCoord) center() (x, y float64) {
	x = math.Sqrt(3) * (float64(h.Q) + float64(h.R)/2)
	y = 1.5 * float64(h.R)
	return
}

// corners returns the six corner pixel positions of the hex.
func (h HexCoord) corners() [6][2]float64 {
	cx, cy := h.center()
	var out [6][2]float64
	for k := 0; k < 6; k++ {
		angle := math.Pi / 180 * (60*float64(k) - 30)
		out[k] = [2]float64{cx + math.Cos(angle), cy + math.Sin(angle)}
	}
	return out
}

// Harbor is a trading discount attached to a water tile and inherited by
// adjacent shore nodes. An empty Resource means any resource (generic 3:1).
type Harbor struct {
	Ratio    int      `json:"ratio"`
	Resource Resource `json:"resource,omitempty"`
}

// Tile is one hex cell of the board. Number is 0 for desert and water.
type Tile struct {
	ID        int      `json:"id"`
	Coord     HexCoord `json:"coord"`
	Resource  Resource `json:"resource"`
	Number    int      `json:"number,omitempty"`
	Harbor    *Harbor  `json:"harbor,omitempty"`
	HasRobber bool     `json:"hasRobber"`
}

// BuildingType is the tagged variant for what stands on a node.
type BuildingType string

const (
	TownBuilding BuildingType = "town"
	CityBuilding BuildingType = "city"
)

// Building occupies a node and belongs to one player.
type Building struct {
	Owner int          `json:"ownerId"`
	Type  BuildingType `json:"type"`
}

// Node is a corner where up to three tiles meet; a build site for towns and
// cities. Harbors are inherited from adjacent water tiles.
type Node struct {
	ID       int       `json:"id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Tiles    []int     `json:"tiles"`
	CanBuild bool      `json:"canBuild"`
	Harbors  []Harbor  `json:"harbors,omitempty"`
	Building *Building `json:"building,omitempty"`
}

// Edge connects two nodes; a build site for roads. Owner is -1 while unowned.
type Edge struct {
	ID    int `json:"id"`
	A     int `json:"a"`
	B     int `json:"b"`
	Owner int `json:"ownerId"`
}

// Board is the tile/node/edge graph. Immutable after generation except for the
// robber flag on tiles, buildings on nodes, and road ownership on edges.
type Board struct {
	Tiles []Tile `json:"tiles"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// Derived adjacency, built once after generation and shared by clones.
	nodeEdges [][]int // node id -> incident edge ids
	tileNodes [][]int // tile id -> corner node ids
}

// buildAdjacency fills the derived adjacency lists from Nodes/Edges/Tiles.
func (b *Board) buildAdjacency() {
	b.nodeEdges = make([][]int, len(b.Nodes))
	for _, e := range b.Edges {
		b.nodeEdges[e.A] = append(b.nodeEdges[e.A], e.ID)
		b.nodeEdges[e.B] = append(b.nodeEdges[e.B], e.ID)
	}
	b.tileNodes = make([][]int, len(b.Tiles))
	for _, n := range b.Nodes {
		for _, t := range n.Tiles {
			b.tileNodes[t] = append(b.tileNodes[t], n.ID)
		}
	}
}

// EdgesAt returns the ids of edges incident to a node.
func (b *Board) EdgesAt(node int) []int { return b.nodeEdges[node] }

// TileNodes returns the ids of the corner nodes of a tile.
func (b *Board) TileNodes(tile int) []int { return b.tileNodes[tile] }

// NodeNeighbors returns the nodes reachable from a node through one edge.
func (b *Board) NodeNeighbors(node int) []int {
	edges := b.nodeEdges[node]
	out := make([]int, 0, len(edges))
	for _, eid := range edges {
		e := b.Edges[eid]
		if e.A == node {
			out = append(out, e.B)
		} else {
			out = append(out, e.A)
		}
	}
	return out
}

// RobberTile returns the id of the tile currently carrying the robber.
func (b *Board) RobberTile() int {
	for i := range b.Tiles {
		if b.Tiles[i].HasRobber {
			return i
		}
	}
	return -1
}

// Clone deep-copies the mutable parts of the board. The derived adjacency
// lists are shared: they never change after generation.
func (b *Board) Clone() *Board {
	c := &Board{
		Tiles:     make([]Tile, len(b.Tiles)),
		Nodes:     make([]Node, len(b.Nodes)),
		Edges:     make([]Edge, len(b.Edges)),
		nodeEdges: b.nodeEdges,
		tileNodes: b.tileNodes,
	}
	copy(c.Tiles, b.Tiles)
	copy(c.Nodes, b.Nodes)
	copy(c.Edges, b.Edges)
	for i := range c.Nodes {
		if bd := c.Nodes[i].Building; bd != nil {
			cp := *bd
			c.Nodes[i].Building = &cp
		}
	}
	return c
}
