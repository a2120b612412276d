package settlers

import "strings"

// Resource identifies what a tile yields, or a terrain that yields nothing.
type Resource string

const (
	Wood  Resource = "wood"
	Brick Resource = "brick"
	Wheat Resource = "wheat"
	Sheep Resource = "sheep"
	Ore   Resource = "ore"

	// Non-producing terrains.
	Desert Resource = "desert"
	Water  Resource = "water"
)

// TradeResources is the canonical set of resources a player can hold and trade.
var TradeResources = []Resource{Wood, Brick, Wheat, Sheep, Ore}

// resourceSynonyms accepts the alternate names used by other editions of the
// game (and by LLM proposals) alongside the canonical ones.
var resourceSynonyms = map[string]Resource{
	"wood": Wood, "lumber": Wood, "timber": Wood,
	"brick": Brick, "clay": Brick,
	"wheat": Wheat, "grain": Wheat,
	"sheep": Sheep, "wool": Sheep,
	"ore": Ore, "rock": Ore, "stone": Ore,
}

// NormalizeResource maps a resource name or common synonym to canonical form.
func NormalizeResource(s string) (Resource, bool) {
	r, ok := resourceSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// Producing reports whether the resource is one buildings can collect.
func (r Resource) Producing() bool {
	switch r {
	case Wood, Brick, Wheat, Sheep, Ore:
		return true
	}
	return false
}

// Build costs.
var (
	roadCost = map[Resource]int{Wood: 1, Brick: 1}
	townCost = map[Resource]int{Wood: 1, Brick: 1, Wheat: 1, Sheep: 1}
	cityCost = map[Resource]int{Wheat: 2, Ore: 3}
	devCost  = map[Resource]int{Sheep: 1, Wheat: 1, Ore: 1}
)
