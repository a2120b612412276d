package settlers

// TradeOption is one affordable harbor trade at the player's best ratio.
type TradeOption struct {
	Give    Resource `json:"giveResource"`
	Receive Resource `json:"receiveResource"`
	Ratio   int      `json:"ratio"`
}

// ActionSet enumerates every action a player could legally take right now.
// It is the source of truth for the agent driver's fallback and for the UI's
// clickability hints.
type ActionSet struct {
	RollDice         bool          `json:"rollDice"`
	EndTurn          bool          `json:"endTurn"`
	MoveRobber       []int         `json:"moveRobber,omitempty"`
	BuildTown        []int         `json:"buildTown,omitempty"`
	BuildCity        []int         `json:"buildCity,omitempty"`
	BuildRoad        []int         `json:"buildRoad,omitempty"`
	BuyDevCard       bool          `json:"buyDevCard"`
	HarborTrades     []TradeOption `json:"harborTrade,omitempty"`
	PlayKnight       bool          `json:"playKnight"`
	PlayRoadBuilding bool          `json:"playRoadBuilding"`
	PlayYearOfPlenty bool          `json:"playYearOfPlenty"`
	PlayMonopoly     bool          `json:"playMonopoly"`
}

// LegalActions enumerates the legal moves for a player. Every listed entry
// applies without a RuleError from the state that produced it.
func (g *Game) LegalActions(player int) ActionSet {
	var s ActionSet
	if g.Winner >= 0 || !g.ValidPlayer(player) || player != g.Current {
		return s
	}
	p := g.Players[player]
	s.EndTurn = true

	if !p.HasRolled {
		s.RollDice = true
		return s
	}

	if g.RobberPending {
		robber := g.Board.RobberTile()
		for i := range g.Board.Tiles {
			if i != robber {
				s.MoveRobber = append(s.MoveRobber, i)
			}
		}
		return s
	}

	for i := range g.Board.Nodes {
		n := &g.Board.Nodes[i]
		if n.Building == nil {
			if n.CanBuild && p.canAfford(townCost) && !g.neighborBuilt(i) {
				s.BuildTown = append(s.BuildTown, i)
			}
			continue
		}
		if n.Building.Owner == player && n.Building.Type == TownBuilding && p.canAfford(cityCost) {
			s.BuildCity = append(s.BuildCity, i)
		}
	}

	canPayRoad := p.FreeRoads > 0 || p.canAfford(roadCost)
	if canPayRoad {
		for i := range g.Board.Edges {
			if g.Board.Edges[i].Owner < 0 && g.roadConnected(player, i) {
				s.BuildRoad = append(s.BuildRoad, i)
			}
		}
	}

	s.BuyDevCard = len(g.Deck) > 0 && p.canAfford(devCost)

	for _, give := range TradeResources {
		ratio := g.TradeRatio(player, give)
		if p.Resources[give] < ratio {
			continue
		}
		for _, recv := range TradeResources {
			if recv == give {
				continue
			}
			s.HarborTrades = append(s.HarborTrades, TradeOption{Give: give, Receive: recv, Ratio: ratio})
		}
	}

	s.PlayKnight = hasPlayable(p, CardKnight)
	s.PlayRoadBuilding = hasPlayable(p, CardRoadBuilding)
	s.PlayYearOfPlenty = hasPlayable(p, CardYearOfPlenty)
	s.PlayMonopoly = hasPlayable(p, CardMonopoly)
	return s
}

func (g *Game) neighborBuilt(node int) bool {
	for _, nb := range g.Board.NodeNeighbors(node) {
		if g.Board.Nodes[nb].Building != nil {
			return true
		}
	}
	return false
}

// All flattens the set into concrete actions for search expansion. endTurn is
// listed last so greedy consumers prefer productive moves.
func (s ActionSet) All() []Action {
	var out []Action
	if s.RollDice {
		out = append(out, Action{Type: ActionRollDice})
	}
	for _, h := range s.MoveRobber {
		out = append(out, Action{Type: ActionMoveRobber, HexID: h})
	}
	for _, n := range s.BuildCity {
		out = append(out, Action{Type: ActionBuildCity, NodeID: n})
	}
	for _, n := range s.BuildTown {
		out = append(out, Action{Type: ActionBuildTown, NodeID: n})
	}
	for _, e := range s.BuildRoad {
		out = append(out, Action{Type: ActionBuildRoad, EdgeID: e})
	}
	if s.BuyDevCard {
		out = append(out, Action{Type: ActionBuyDevCard})
	}
	for _, t := range s.HarborTrades {
		out = append(out, Action{Type: ActionHarborTrade, Give: t.Give, Receive: t.Receive})
	}
	if s.PlayKnight {
		out = append(out, Action{Type: ActionPlayKnight})
	}
	if s.PlayRoadBuilding {
		out = append(out, Action{Type: ActionPlayRoadBuilding})
	}
	if s.PlayYearOfPlenty {
		for i, r1 := range TradeResources {
			for _, r2 := range TradeResources[i:] {
				out = append(out, Action{Type: ActionPlayYearOfPlenty, Resource1: r1, Resource2: r2})
			}
		}
	}
	if s.PlayMonopoly {
		for _, r := range TradeResources {
			out = append(out, Action{Type: ActionPlayMonopoly, Resource: r})
		}
	}
	if s.EndTurn {
		out = append(out, Action{Type: ActionEndTurn})
	}
	return out
}
