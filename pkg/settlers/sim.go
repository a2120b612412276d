package settlers

import "math/rand"

// ApplySim mutates the game with a cheap approximation of Apply, for search
// playouts only. It pays costs and writes ownership without revalidating
// distance or connectivity (candidate generation already filtered those), and
// it does not recompute the longest-road or largest-army bonuses. Dice come
// from the supplied rng. Never use this on an authoritative session.
func (g *Game) ApplySim(a Action, rng *rand.Rand) {
	p := g.Players[g.Current]
	switch a.Type {
	case ActionRollDice:
		total := rng.Intn(6) + rng.Intn(6) + 2
		g.LastRoll = total
		p.HasRolled = true
		if total == 7 {
			g.RobberPending = true
		} else {
			g.distribute(total)
		}
	case ActionMoveRobber:
		if from := g.Board.RobberTile(); from >= 0 && a.HexID >= 0 && a.HexID < len(g.Board.Tiles) {
			g.Board.Tiles[from].HasRobber = false
			g.Board.Tiles[a.HexID].HasRobber = true
		}
		p.RobberMoved = true
		g.RobberPending = false
	case ActionBuildRoad:
		if p.FreeRoads > 0 {
			p.FreeRoads--
		} else {
			p.pay(roadCost)
		}
		if a.EdgeID >= 0 && a.EdgeID < len(g.Board.Edges) {
			g.Board.Edges[a.EdgeID].Owner = p.ID
		}
	case ActionBuildTown:
		p.pay(townCost)
		if a.NodeID >= 0 && a.NodeID < len(g.Board.Nodes) {
			g.Board.Nodes[a.NodeID].Building = &Building{Owner: p.ID, Type: TownBuilding}
		}
	case ActionBuildCity:
		p.pay(cityCost)
		if a.NodeID >= 0 && a.NodeID < len(g.Board.Nodes) {
			if bd := g.Board.Nodes[a.NodeID].Building; bd != nil {
				bd.Type = CityBuilding
			}
		}
	case ActionHarborTrade:
		ratio := g.TradeRatio(p.ID, a.Give)
		p.Resources[a.Give] -= ratio
		p.Resources[a.Receive]++
		p.Trades++
	case ActionBuyDevCard:
		if len(g.Deck) > 0 {
			p.pay(devCost)
			card := g.Deck[len(g.Deck)-1]
			g.Deck = g.Deck[:len(g.Deck)-1]
			p.DevCards = append(p.DevCards, DevCard{Type: card})
			p.BoughtDevCard = true
		}
	case ActionPlayKnight:
		if p.takeCard(CardKnight) {
			p.KnightsPlayed++
		}
	case ActionPlayRoadBuilding:
		if p.takeCard(CardRoadBuilding) {
			p.FreeRoads += 2
		}
	case ActionPlayYearOfPlenty:
		if p.takeCard(CardYearOfPlenty) {
			p.Resources[a.Resource1]++
			p.Resources[a.Resource2]++
		}
	case ActionPlayMonopoly:
		if p.takeCard(CardMonopoly) {
			total := 0
			for _, other := range g.Players {
				if other.ID != p.ID {
					total += other.Resources[a.Resource]
					other.Resources[a.Resource] = 0
				}
			}
			p.Resources[a.Resource] += total
		}
	case ActionEndTurn:
		for i := range p.DevCards {
			p.DevCards[i].CanPlay = true
		}
		p.HasRolled = false
		p.RobberMoved = false
		p.BoughtDevCard = false
		p.FreeRoads = 0
		g.RobberPending = false
		g.Current = (g.Current + 1) % len(g.Players)
		g.Turn++
	}

	// Clamp: playouts may pay costs the candidate filter did not recheck.
	for _, r := range TradeResources {
		if p.Resources[r] < 0 {
			p.Resources[r] = 0
		}
	}
	g.recomputeVP()
	if g.Winner < 0 {
		for _, pl := range g.Players {
			if pl.VP >= 10 {
				g.Winner = pl.ID
				break
			}
		}
	}
}
