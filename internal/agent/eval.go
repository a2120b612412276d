package agent

import "github.com/openhex/settlers/api/pkg/settlers"

// rollWeight returns the 2d6 probability of a number token. Sevens never
// produce, so they weigh zero.
func rollWeight(n int) float64 {
	if n < 2 || n > 12 || n == 7 {
		return 0
	}
	d := 7 - n
	if d < 0 {
		d = -d
	}
	return float64(6-d) / 36
}

// nodeProductionScore rates a build site by the expected yield of its adjacent
// tiles. Tiles under the robber are discounted, and touching several distinct
// resources earns a small diversity bonus.
func nodeProductionScore(b *settlers.Board, nodeID int) float64 {
	score := 0.0
	distinct := map[settlers.Resource]bool{}
	for _, ti := range b.Nodes[nodeID].Tiles {
		t := &b.Tiles[ti]
		if !t.Resource.Producing() {
			continue
		}
		w := rollWeight(t.Number)
		if t.HasRobber {
			w -= 0.15
			if w < 0 {
				w = 0
			}
		}
		score += w
		distinct[t.Resource] = true
	}
	if len(distinct) > 1 {
		score += 0.04 * float64(len(distinct)-1)
	}
	return score
}

// edgeExpansionScore rates a road by the best build site it reaches, with a
// nudge for every empty buildable endpoint it opens up.
func edgeExpansionScore(g *settlers.Game, edgeID int) float64 {
	e := g.Board.Edges[edgeID]
	best := 0.0
	open := 0.0
	for _, nid := range []int{e.A, e.B} {
		n := &g.Board.Nodes[nid]
		if s := nodeProductionScore(g.Board, nid); s > best {
			best = s
		}
		if n.Building == nil && n.CanBuild {
			open += 0.05
		}
	}
	return best + open
}

// productionScore is the player's total expected yield per roll: towns count
// once, cities twice.
func productionScore(g *settlers.Game, player int) float64 {
	total := 0.0
	for i := range g.Board.Nodes {
		bd := g.Board.Nodes[i].Building
		if bd == nil || bd.Owner != player {
			continue
		}
		s := nodeProductionScore(g.Board, i)
		if bd.Type == settlers.CityBuilding {
			s *= 2
		}
		total += s
	}
	return total
}

// handScore rates the player's resources: cards are worth holding up to a
// point, and being able to afford the next build is worth more than the cards
// themselves.
func handScore(g *settlers.Game, player int) float64 {
	p := g.Players[player]
	total := 0
	for _, r := range settlers.TradeResources {
		c := p.Resources[r]
		total += c
		if c > 3 {
			total += 3 - c // hoarding one resource is dead weight
		}
	}
	score := 0.06 * float64(total)
	towns, _ := g.Buildings(player)
	if p.Resources[settlers.Wheat] >= 2 && p.Resources[settlers.Ore] >= 3 && towns > 0 {
		score += 0.35
	}
	if p.Resources[settlers.Wood] >= 1 && p.Resources[settlers.Brick] >= 1 &&
		p.Resources[settlers.Wheat] >= 1 && p.Resources[settlers.Sheep] >= 1 {
		score += 0.3
	}
	return score
}

// evaluateState scores a position from one player's point of view. Decisive
// positions dominate every heuristic term.
func evaluateState(g *settlers.Game, player int) float64 {
	if g.Winner >= 0 {
		if g.Winner == player {
			return 1000
		}
		return -1000
	}

	me := g.Players[player]
	own := 2.4*float64(me.VP) + 1.2*productionScore(g, player) + 0.6*handScore(g, player)

	bestOpp := 0.0
	for _, p := range g.Players {
		if p.ID == player {
			continue
		}
		s := 1.25*float64(p.VP) + 0.85*productionScore(g, p.ID)
		if s > bestOpp {
			bestOpp = s
		}
	}
	return own - 0.9*bestOpp
}
