package agent

import "github.com/openhex/settlers/api/pkg/settlers"

// HeuristicStrategy plays a greedy priority cascade: roll, settle the robber,
// then build from most to least valuable, and pass when nothing productive is
// left. It is the default algorithm seat and the fallback everywhere else.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (s HeuristicStrategy) ChooseAction(g *settlers.Game, player int) settlers.Action {
	set := g.LegalActions(player)

	if set.RollDice {
		return settlers.Action{Type: settlers.ActionRollDice}
	}
	if len(set.MoveRobber) > 0 {
		return settlers.Action{Type: settlers.ActionMoveRobber, HexID: bestRobberTile(g, player, set.MoveRobber)}
	}
	if len(set.BuildCity) > 0 {
		return settlers.Action{Type: settlers.ActionBuildCity, NodeID: bestNode(g, set.BuildCity)}
	}
	if len(set.BuildTown) > 0 {
		return settlers.Action{Type: settlers.ActionBuildTown, NodeID: bestNode(g, set.BuildTown)}
	}
	if len(set.BuildRoad) > 0 {
		return settlers.Action{Type: settlers.ActionBuildRoad, EdgeID: bestEdge(g, set.BuildRoad)}
	}
	if set.BuyDevCard {
		return settlers.Action{Type: settlers.ActionBuyDevCard}
	}
	return settlers.Action{Type: settlers.ActionEndTurn}
}

func bestNode(g *settlers.Game, candidates []int) int {
	best, bestScore := candidates[0], -1.0
	for _, n := range candidates {
		if s := nodeProductionScore(g.Board, n); s > bestScore {
			best, bestScore = n, s
		}
	}
	return best
}

func bestEdge(g *settlers.Game, candidates []int) int {
	best, bestScore := candidates[0], -1.0
	for _, e := range candidates {
		if s := edgeExpansionScore(g, e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best
}

// bestRobberTile targets the tile where opponents lose the most expected
// yield, discounted by what the mover's own buildings would lose.
func bestRobberTile(g *settlers.Game, player int, candidates []int) int {
	best, bestScore := candidates[0], -1e9
	for _, ti := range candidates {
		if s := robberScore(g, player, ti); s > bestScore {
			best, bestScore = ti, s
		}
	}
	return best
}

func robberScore(g *settlers.Game, player, tile int) float64 {
	t := &g.Board.Tiles[tile]
	if !t.Resource.Producing() {
		return -1
	}
	opp, own := 0.0, 0.0
	for _, nid := range g.Board.TileNodes(tile) {
		bd := g.Board.Nodes[nid].Building
		if bd == nil {
			continue
		}
		weight := 1.0
		if bd.Type == settlers.CityBuilding {
			weight = 2.0
		}
		if bd.Owner == player {
			own += weight
		} else {
			opp += weight
		}
	}
	return rollWeight(t.Number) * (opp - 0.65*own)
}
