package settlers

import (
	"fmt"
	"strings"
)

// ActionType enumerates the action vocabulary.
type ActionType string

const (
	ActionRollDice         ActionType = "rollDice"
	ActionMoveRobber       ActionType = "moveRobber"
	ActionBuildRoad        ActionType = "buildRoad"
	ActionBuildTown        ActionType = "buildTown"
	ActionBuildCity        ActionType = "buildCity"
	ActionHarborTrade      ActionType = "harborTrade"
	ActionBuyDevCard       ActionType = "buyDevCard"
	ActionPlayKnight       ActionType = "playKnight"
	ActionPlayRoadBuilding ActionType = "playRoadBuilding"
	ActionPlayYearOfPlenty ActionType = "playYearOfPlenty"
	ActionPlayMonopoly     ActionType = "playMonopoly"
	ActionEndTurn          ActionType = "endTurn"

	// eventGameWon is a log-only marker, never a submittable action.
	eventGameWon ActionType = "gameWon"
)

var actionNames = map[string]ActionType{
	"rolldice": ActionRollDice, "roll_dice": ActionRollDice, "roll": ActionRollDice,
	"moverobber": ActionMoveRobber, "move_robber": ActionMoveRobber,
	"buildroad": ActionBuildRoad, "build_road": ActionBuildRoad,
	"buildtown": ActionBuildTown, "build_town": ActionBuildTown, "buildsettlement": ActionBuildTown,
	"buildcity": ActionBuildCity, "build_city": ActionBuildCity,
	"harbortrade": ActionHarborTrade, "harbor_trade": ActionHarborTrade, "trade": ActionHarborTrade,
	"buydevcard": ActionBuyDevCard, "buy_dev_card": ActionBuyDevCard,
	"playknight": ActionPlayKnight, "play_knight": ActionPlayKnight,
	"playroadbuilding": ActionPlayRoadBuilding, "play_road_building": ActionPlayRoadBuilding,
	"playyearofplenty": ActionPlayYearOfPlenty, "play_year_of_plenty": ActionPlayYearOfPlenty,
	"playmonopoly": ActionPlayMonopoly, "play_monopoly": ActionPlayMonopoly,
	"endturn": ActionEndTurn, "end_turn": ActionEndTurn, "pass": ActionEndTurn,
}

// Action is one fully-typed move. Only the fields relevant to Type are used.
type Action struct {
	Type      ActionType `json:"action"`
	HexID     int        `json:"hexId,omitempty"`
	NodeID    int        `json:"nodeId,omitempty"`
	EdgeID    int        `json:"edgeId,omitempty"`
	Free      bool       `json:"free,omitempty"`
	Give      Resource   `json:"giveResource,omitempty"`
	Receive   Resource   `json:"receiveResource,omitempty"`
	Resource1 Resource   `json:"resource1,omitempty"`
	Resource2 Resource   `json:"resource2,omitempty"`
	Resource  Resource   `json:"resource,omitempty"`
}

// ParseAction builds a typed Action from a wire-level action name and its
// untyped payload, normalizing resource synonyms and dropping unknown fields.
func ParseAction(name string, payload map[string]any) (Action, error) {
	t, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	a := Action{Type: t}

	intField := func(keys ...string) (int, bool) {
		for _, k := range keys {
			if v, ok := payload[k]; ok {
				switch n := v.(type) {
				case float64:
					return int(n), true
				case int:
					return n, true
				}
			}
		}
		return 0, false
	}
	resField := func(keys ...string) (Resource, bool) {
		for _, k := range keys {
			if v, ok := payload[k].(string); ok {
				if r, ok := NormalizeResource(v); ok {
					return r, true
				}
			}
		}
		return "", false
	}

	switch t {
	case ActionMoveRobber:
		n, ok := intField("hexId", "hex_id", "tileId")
		if !ok {
			return Action{}, fmt.Errorf("%s: missing hexId", t)
		}
		a.HexID = n
	case ActionBuildRoad:
		n, ok := intField("edgeId", "edge_id")
		if !ok {
			return Action{}, fmt.Errorf("%s: missing edgeId", t)
		}
		a.EdgeID = n
		if f, ok := payload["free"].(bool); ok {
			a.Free = f
		}
	case ActionBuildTown, ActionBuildCity:
		n, ok := intField("nodeId", "node_id")
		if !ok {
			return Action{}, fmt.Errorf("%s: missing nodeId", t)
		}
		a.NodeID = n
	case ActionHarborTrade:
		give, ok1 := resField("giveResource", "give")
		recv, ok2 := resField("receiveResource", "receive")
		if !ok1 || !ok2 {
			return Action{}, fmt.Errorf("%s: missing or unrecognized give/receive resource", t)
		}
		a.Give, a.Receive = give, recv
	case ActionPlayYearOfPlenty:
		r1, ok1 := resField("resource1")
		r2, ok2 := resField("resource2")
		if !ok1 || !ok2 {
			return Action{}, fmt.Errorf("%s: missing resource1/resource2", t)
		}
		a.Resource1, a.Resource2 = r1, r2
	case ActionPlayMonopoly:
		r, ok := resField("resource")
		if !ok {
			return Action{}, fmt.Errorf("%s: missing resource", t)
		}
		a.Resource = r
	}
	return a, nil
}

// Apply validates and applies one action for the given player. Either state
// mutates consistently and an event is appended, or a RuleError is returned
// and the state is untouched.
func (g *Game) Apply(player int, a Action) (Event, error) {
	switch a.Type {
	case ActionRollDice:
		return g.RollDice(player)
	case ActionMoveRobber:
		return g.MoveRobber(player, a.HexID)
	case ActionBuildRoad:
		return g.BuildRoad(player, a.EdgeID, a.Free)
	case ActionBuildTown:
		return g.BuildTown(player, a.NodeID)
	case ActionBuildCity:
		return g.BuildCity(player, a.NodeID)
	case ActionHarborTrade:
		return g.HarborTrade(player, a.Give, a.Receive)
	case ActionBuyDevCard:
		return g.BuyDevCard(player)
	case ActionPlayKnight:
		return g.PlayKnight(player)
	case ActionPlayRoadBuilding:
		return g.PlayRoadBuilding(player)
	case ActionPlayYearOfPlenty:
		return g.PlayYearOfPlenty(player, a.Resource1, a.Resource2)
	case ActionPlayMonopoly:
		return g.PlayMonopoly(player, a.Resource)
	case ActionEndTurn:
		return g.EndTurn(player)
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

// active rejects actions from finished games and out-of-turn players.
func (g *Game) active(player int, act ActionType) error {
	if g.Winner >= 0 {
		return ruleErr(act, "the game is already won")
	}
	if !g.ValidPlayer(player) {
		return ruleErr(act, "no such player %d", player)
	}
	if player != g.Current {
		return ruleErr(act, "it is not player %d's turn", player)
	}
	return nil
}

// mainPhase rejects actions before the dice roll or while a robber move is
// owed (the 7-roll and knight obligations).
func (g *Game) mainPhase(player int, act ActionType) error {
	if err := g.active(player, act); err != nil {
		return err
	}
	p := g.Players[player]
	if !p.HasRolled {
		return ruleErr(act, "roll the dice first")
	}
	if g.RobberPending {
		return ruleErr(act, "the robber must be moved first")
	}
	return nil
}

func (g *Game) log(ev Event) Event {
	g.Events = append(g.Events, ev)
	return ev
}

// RollDice rolls 2d6 for the active player. A 7 yields no production and
// obligates a robber move; any other total distributes resources to buildings
// adjacent to matching tiles not covered by the robber.
func (g *Game) RollDice(player int) (Event, error) {
	if err := g.active(player, ActionRollDice); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if p.HasRolled {
		return Event{}, ruleErr(ActionRollDice, "already rolled this turn")
	}

	total := g.nextRoll()
	g.LastRoll = total
	p.HasRolled = true

	if total == 7 {
		g.LastProduction = nil
		g.RobberPending = true
		return g.log(Event{Action: ActionRollDice, Player: player, Roll: total,
			Detail: "rolled a 7, the robber must move"}), nil
	}

	prod := g.distribute(total)
	g.LastProduction = prod
	return g.log(Event{Action: ActionRollDice, Player: player, Roll: total, Production: prod}), nil
}

// distribute awards resources for a non-7 total: one per town and two per
// city adjacent to each matching, robber-free tile.
func (g *Game) distribute(total int) []Production {
	var prod []Production
	for ti := range g.Board.Tiles {
		t := &g.Board.Tiles[ti]
		if t.Number != total || t.HasRobber || !t.Resource.Producing() {
			continue
		}
		for _, nid := range g.Board.TileNodes(ti) {
			bd := g.Board.Nodes[nid].Building
			if bd == nil {
				continue
			}
			amount := 1
			if bd.Type == CityBuilding {
				amount = 2
			}
			g.Players[bd.Owner].Resources[t.Resource] += amount
			prod = append(prod, Production{Player: bd.Owner, Resource: t.Resource, Amount: amount, Tile: ti})
		}
	}
	return prod
}

// MoveRobber relocates the robber to hexID. At most one robber move per turn,
// whether prompted by a 7 or by a knight.
func (g *Game) MoveRobber(player, hexID int) (Event, error) {
	if err := g.active(player, ActionMoveRobber); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if p.RobberMoved {
		return Event{}, ruleErr(ActionMoveRobber, "the robber was already moved this turn")
	}
	if hexID < 0 || hexID >= len(g.Board.Tiles) {
		return Event{}, ruleErr(ActionMoveRobber, "no such tile %d", hexID)
	}
	from := g.Board.RobberTile()
	if hexID == from {
		return Event{}, ruleErr(ActionMoveRobber, "the robber is already on tile %d", hexID)
	}

	g.Board.Tiles[from].HasRobber = false
	g.Board.Tiles[hexID].HasRobber = true
	p.RobberMoved = true
	g.RobberPending = false
	return g.log(Event{Action: ActionMoveRobber, Player: player,
		Detail: fmt.Sprintf("robber moved from tile %d to tile %d", from, hexID)}), nil
}

// BuildRoad claims an empty edge connected to the player's network. Roads
// granted by a road-building card are consumed before resources are charged.
func (g *Game) BuildRoad(player, edgeID int, free bool) (Event, error) {
	if err := g.active(player, ActionBuildRoad); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	useFree := p.FreeRoads > 0
	if useFree {
		if g.RobberPending {
			return Event{}, ruleErr(ActionBuildRoad, "the robber must be moved first")
		}
	} else {
		if free {
			return Event{}, ruleErr(ActionBuildRoad, "no free roads available")
		}
		if err := g.mainPhase(player, ActionBuildRoad); err != nil {
			return Event{}, err
		}
	}

	if edgeID < 0 || edgeID >= len(g.Board.Edges) {
		return Event{}, ruleErr(ActionBuildRoad, "no such edge %d", edgeID)
	}
	e := &g.Board.Edges[edgeID]
	if e.Owner >= 0 {
		return Event{}, ruleErr(ActionBuildRoad, "edge %d already has a road", edgeID)
	}
	if !g.roadConnected(player, edgeID) {
		return Event{}, ruleErr(ActionBuildRoad, "edge %d does not connect to your network", edgeID)
	}
	if !useFree && !p.canAfford(roadCost) {
		return Event{}, ruleErr(ActionBuildRoad, "cannot afford a road (1 wood, 1 brick)")
	}

	if useFree {
		p.FreeRoads--
	} else {
		p.pay(roadCost)
	}
	e.Owner = player
	g.recomputeLongestRoad()
	g.recomputeVP()
	ev := g.log(Event{Action: ActionBuildRoad, Player: player,
		Detail: fmt.Sprintf("road built on edge %d", edgeID)})
	g.checkWinner()
	return ev, nil
}

// roadConnected implements the connectivity rule: an endpoint holds one of
// the player's buildings, or an adjacent edge already carries their road.
func (g *Game) roadConnected(player, edgeID int) bool {
	e := g.Board.Edges[edgeID]
	for _, nid := range []int{e.A, e.B} {
		if bd := g.Board.Nodes[nid].Building; bd != nil && bd.Owner == player {
			return true
		}
		for _, other := range g.Board.EdgesAt(nid) {
			if other != edgeID && g.Board.Edges[other].Owner == player {
				return true
			}
		}
	}
	return false
}

// BuildTown places a town on an empty, buildable node that respects the
// distance rule.
func (g *Game) BuildTown(player, nodeID int) (Event, error) {
	if err := g.mainPhase(player, ActionBuildTown); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if nodeID < 0 || nodeID >= len(g.Board.Nodes) {
		return Event{}, ruleErr(ActionBuildTown, "no such node %d", nodeID)
	}
	n := &g.Board.Nodes[nodeID]
	if n.Building != nil {
		return Event{}, ruleErr(ActionBuildTown, "node %d is occupied", nodeID)
	}
	if !n.CanBuild {
		return Event{}, ruleErr(ActionBuildTown, "node %d is not buildable", nodeID)
	}
	for _, nb := range g.Board.NodeNeighbors(nodeID) {
		if g.Board.Nodes[nb].Building != nil {
			return Event{}, ruleErr(ActionBuildTown, "distance rule: node %d neighbors a building", nodeID)
		}
	}
	if !p.canAfford(townCost) {
		return Event{}, ruleErr(ActionBuildTown, "cannot afford a town (1 wood, 1 brick, 1 wheat, 1 sheep)")
	}

	p.pay(townCost)
	n.Building = &Building{Owner: player, Type: TownBuilding}
	g.recomputeVP()
	ev := g.log(Event{Action: ActionBuildTown, Player: player,
		Detail: fmt.Sprintf("town built on node %d", nodeID)})
	g.checkWinner()
	return ev, nil
}

// BuildCity upgrades the player's own town to a city.
func (g *Game) BuildCity(player, nodeID int) (Event, error) {
	if err := g.mainPhase(player, ActionBuildCity); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if nodeID < 0 || nodeID >= len(g.Board.Nodes) {
		return Event{}, ruleErr(ActionBuildCity, "no such node %d", nodeID)
	}
	n := &g.Board.Nodes[nodeID]
	if n.Building == nil || n.Building.Owner != player || n.Building.Type != TownBuilding {
		return Event{}, ruleErr(ActionBuildCity, "node %d does not hold your town", nodeID)
	}
	if !p.canAfford(cityCost) {
		return Event{}, ruleErr(ActionBuildCity, "cannot afford a city (2 wheat, 3 ore)")
	}

	p.pay(cityCost)
	n.Building.Type = CityBuilding
	g.recomputeVP()
	ev := g.log(Event{Action: ActionBuildCity, Player: player,
		Detail: fmt.Sprintf("city built on node %d", nodeID)})
	g.checkWinner()
	return ev, nil
}

// TradeRatio resolves the player's best exchange ratio for giving a resource:
// 2 with a matching specific harbor, 3 with any generic harbor, 4 otherwise.
// Harbors count only on nodes currently holding one of the player's buildings.
func (g *Game) TradeRatio(player int, give Resource) int {
	ratio := 4
	for i := range g.Board.Nodes {
		n := &g.Board.Nodes[i]
		if n.Building == nil || n.Building.Owner != player {
			continue
		}
		for _, h := range n.Harbors {
			switch {
			case h.Ratio == 2 && h.Resource == give:
				return 2
			case h.Ratio == 3 && h.Resource == "" && ratio > 3:
				ratio = 3
			}
		}
	}
	return ratio
}

// HarborTrade exchanges ratio-many of give for one receive.
func (g *Game) HarborTrade(player int, give, receive Resource) (Event, error) {
	if err := g.mainPhase(player, ActionHarborTrade); err != nil {
		return Event{}, err
	}
	if !give.Producing() || !receive.Producing() {
		return Event{}, ruleErr(ActionHarborTrade, "unknown resource in trade")
	}
	p := g.Players[player]
	ratio := g.TradeRatio(player, give)
	if p.Resources[give] < ratio {
		return Event{}, ruleErr(ActionHarborTrade, "need %d %s to trade at %d:1", ratio, give, ratio)
	}

	p.Resources[give] -= ratio
	p.Resources[receive]++
	p.Trades++
	return g.log(Event{Action: ActionHarborTrade, Player: player,
		Detail: fmt.Sprintf("traded %d %s for 1 %s", ratio, give, receive)}), nil
}

// BuyDevCard draws the top card of the deck into the player's hand. The card
// stays unplayable until the player's endTurn.
func (g *Game) BuyDevCard(player int) (Event, error) {
	if err := g.mainPhase(player, ActionBuyDevCard); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if len(g.Deck) == 0 {
		return Event{}, ruleErr(ActionBuyDevCard, "the development deck is empty")
	}
	if !p.canAfford(devCost) {
		return Event{}, ruleErr(ActionBuyDevCard, "cannot afford a development card (1 sheep, 1 wheat, 1 ore)")
	}

	p.pay(devCost)
	card := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	p.DevCards = append(p.DevCards, DevCard{Type: card})
	p.BoughtDevCard = true
	g.recomputeVP() // a drawn victory-point card counts immediately
	ev := g.log(Event{Action: ActionBuyDevCard, Player: player,
		Detail: "bought a development card"})
	g.checkWinner()
	return ev, nil
}

// takeCard consumes one playable card of the given type from the hand.
func (p *Player) takeCard(t DevCardType) bool {
	for i, c := range p.DevCards {
		if c.Type == t && c.CanPlay {
			p.DevCards = append(p.DevCards[:i], p.DevCards[i+1:]...)
			return true
		}
	}
	return false
}

// PlayKnight plays a knight: the army grows and a robber move is owed, unless
// the robber already moved this turn.
func (g *Game) PlayKnight(player int) (Event, error) {
	if err := g.mainPhase(player, ActionPlayKnight); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if !hasPlayable(p, CardKnight) {
		return Event{}, ruleErr(ActionPlayKnight, "no playable knight card")
	}

	p.takeCard(CardKnight)
	p.KnightsPlayed++
	if !p.RobberMoved {
		g.RobberPending = true
	}
	g.recomputeLargestArmy()
	g.recomputeVP()
	ev := g.log(Event{Action: ActionPlayKnight, Player: player,
		Detail: fmt.Sprintf("knight played (%d total)", p.KnightsPlayed)})
	g.checkWinner()
	return ev, nil
}

// PlayRoadBuilding grants two free roads for the remainder of the turn.
func (g *Game) PlayRoadBuilding(player int) (Event, error) {
	if err := g.mainPhase(player, ActionPlayRoadBuilding); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
	if !hasPlayable(p, CardRoadBuilding) {
		return Event{}, ruleErr(ActionPlayRoadBuilding, "no playable road building card")
	}

	p.takeCard(CardRoadBuilding)
	p.FreeRoads += 2
	return g.log(Event{Action: ActionPlayRoadBuilding, Player: player,
		Detail: "road building played: two free roads this turn"}), nil
}

// PlayYearOfPlenty grants two chosen resources from the bank.
func (g *Game) PlayYearOfPlenty(player int, r1, r2 Resource) (Event, error) {
	if err := g.mainPhase(player, ActionPlayYearOfPlenty); err != nil {
		return Event{}, err
	}
	if !r1.Producing() || !r2.Producing() {
		return Event{}, ruleErr(ActionPlayYearOfPlenty, "unknown resource")
	}
	p := g.Players[player]
	if !hasPlayable(p, CardYearOfPlenty) {
		return Event{}, ruleErr(ActionPlayYearOfPlenty, "no playable year of plenty card")
	}

	p.takeCard(CardYearOfPlenty)
	p.Resources[r1]++
	p.Resources[r2]++
	return g.log(Event{Action: ActionPlayYearOfPlenty, Player: player,
		Detail: fmt.Sprintf("year of plenty: gained 1 %s and 1 %s", r1, r2)}), nil
}

// PlayMonopoly sweeps every other player's stock of one resource.
func (g *Game) PlayMonopoly(player int, r Resource) (Event, error) {
	if err := g.mainPhase(player, ActionPlayMonopoly); err != nil {
		return Event{}, err
	}
	if !r.Producing() {
		return Event{}, ruleErr(ActionPlayMonopoly, "unknown resource")
	}
	p := g.Players[player]
	if !hasPlayable(p, CardMonopoly) {
		return Event{}, ruleErr(ActionPlayMonopoly, "no playable monopoly card")
	}

	p.takeCard(CardMonopoly)
	total := 0
	for _, other := range g.Players {
		if other.ID == player {
			continue
		}
		total += other.Resources[r]
		other.Resources[r] = 0
	}
	p.Resources[r] += total
	return g.log(Event{Action: ActionPlayMonopoly, Player: player,
		Detail: fmt.Sprintf("monopoly: collected %d %s", total, r)}), nil
}

// EndTurn releases the seat: the player's dev cards become playable, the
// per-turn flags reset, and play advances to the next seat.
func (g *Game) EndTurn(player int) (Event, error) {
	if err := g.active(player, ActionEndTurn); err != nil {
		return Event{}, err
	}
	p := g.Players[player]
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
	return g.log(Event{Action: ActionEndTurn, Player: player,
		Detail: fmt.Sprintf("turn passes to %s", g.Players[g.Current].Name)}), nil
}

func hasPlayable(p *Player, t DevCardType) bool {
	for _, c := range p.DevCards {
		if c.Type == t && c.CanPlay {
			return true
		}
	}
	return false
}
