package settlers

import (
	"fmt"
	"math/rand"
)

// AgentKind identifies what drives a seat.
type AgentKind string

const (
	AgentHuman     AgentKind = "human"
	AgentLLM       AgentKind = "llm"
	AgentAlgorithm AgentKind = "algorithm"
)

// DevCardType enumerates development cards.
type DevCardType string

const (
	CardKnight       DevCardType = "knight"
	CardVictoryPoint DevCardType = "victory_point"
	CardRoadBuilding DevCardType = "road_building"
	CardYearOfPlenty DevCardType = "year_of_plenty"
	CardMonopoly     DevCardType = "monopoly"
)

// DevCard is a card in a player's hand. Cards bought this turn stay
// unplayable until the owner's next endTurn.
type DevCard struct {
	Type    DevCardType `json:"type"`
	CanPlay bool        `json:"canPlay"`
}

// Player is one seat at the table.
type Player struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Kind  AgentKind `json:"agentKind"`

	Resources map[Resource]int `json:"resources"`
	DevCards  []DevCard        `json:"devCards"`

	KnightsPlayed int `json:"knightsPlayed"`
	Trades        int `json:"trades"`

	LongestRoad bool `json:"longestRoad"`
	LargestArmy bool `json:"largestArmy"`

	HasRolled     bool `json:"hasRolled"`
	RobberMoved   bool `json:"robberMovedThisTurn"`
	BoughtDevCard bool `json:"boughtDevCardThisTurn"`
	FreeRoads     int  `json:"freeRoads"`

	VP int `json:"vp"`
}

// Production records one award of resources from a dice roll.
type Production struct {
	Player   int      `json:"playerId"`
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
	Tile     int      `json:"tileId"`
}

// Event is one entry of the append-only game log.
type Event struct {
	Action     ActionType   `json:"action"`
	Player     int          `json:"playerId"`
	Detail     string       `json:"detail,omitempty"`
	Roll       int          `json:"roll,omitempty"`
	Production []Production `json:"production,omitempty"`
}

// Game owns the complete mutable state of one session. All mutations go
// through the action methods, which validate before touching anything.
type Game struct {
	Board          *Board       `json:"board"`
	Players        []*Player    `json:"players"`
	Current        int          `json:"current"`
	Turn           int          `json:"turn"`
	LastRoll       int          `json:"lastRoll"`
	LastProduction []Production `json:"lastProduction,omitempty"`
	Deck           []DevCardType `json:"-"`
	Winner         int          `json:"winner"` // -1 while undecided
	RobberPending  bool         `json:"robberPending"`
	Events         []Event      `json:"events,omitempty"`

	rng *rand.Rand
	// forcedRolls overrides dice totals in tests; consumed front to back.
	forcedRolls []int
}

var defaultColors = []string{"red", "blue", "white", "orange"}

// NewGame generates a board, seats numPlayers players, performs the initial
// placement round, and returns the ready-to-play game.
func NewGame(numPlayers int, seed int64) (*Game, error) {
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("numPlayers must be between 2 and 4, got %d", numPlayers)
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		Board:  generateBoard(rng),
		Winner: -1,
		rng:    rng,
	}
	for i := 0; i < numPlayers; i++ {
		g.Players = append(g.Players, &Player{
			ID:        i,
			Name:      fmt.Sprintf("Player %d", i+1),
			Color:     defaultColors[i],
			Kind:      AgentHuman,
			Resources: map[Resource]int{Wood: 0, Brick: 0, Wheat: 0, Sheep: 0, Ore: 0},
		})
	}
	g.Deck = newDeck(rng)
	g.initialPlacement(rng)
	return g, nil
}

// newDeck returns the shuffled 25-card development deck:
// 14 knights, 5 victory points, 2 road building, 2 year of plenty, 2 monopoly.
func newDeck(rng *rand.Rand) []DevCardType {
	deck := make([]DevCardType, 0, 25)
	add := func(t DevCardType, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, t)
		}
	}
	add(CardKnight, 14)
	add(CardVictoryPoint, 5)
	add(CardRoadBuilding, 2)
	add(CardYearOfPlenty, 2)
	add(CardMonopoly, 2)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// Clone deep-copies the game for speculative search. The clone carries no
// random source and no event log; simulated actions go through ApplySim,
// which takes its own rng.
func (g *Game) Clone() *Game {
	c := &Game{
		Board:         g.Board.Clone(),
		Current:       g.Current,
		Turn:          g.Turn,
		LastRoll:      g.LastRoll,
		Winner:        g.Winner,
		RobberPending: g.RobberPending,
	}
	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		cp.Resources = make(map[Resource]int, len(p.Resources))
		for k, v := range p.Resources {
			cp.Resources[k] = v
		}
		cp.DevCards = append([]DevCard(nil), p.DevCards...)
		c.Players[i] = &cp
	}
	c.Deck = append([]DevCardType(nil), g.Deck...)
	if g.LastProduction != nil {
		c.LastProduction = append([]Production(nil), g.LastProduction...)
	}
	return c
}

// CurrentPlayer returns the active player.
func (g *Game) CurrentPlayer() *Player { return g.Players[g.Current] }

// ValidPlayer reports whether id is a seated player index.
func (g *Game) ValidPlayer(id int) bool { return id >= 0 && id < len(g.Players) }

// Buildings returns the player's town and city counts.
func (g *Game) Buildings(player int) (towns, cities int) {
	for i := range g.Board.Nodes {
		bd := g.Board.Nodes[i].Building
		if bd == nil || bd.Owner != player {
			continue
		}
		if bd.Type == TownBuilding {
			towns++
		} else {
			cities++
		}
	}
	return
}

// RoadCount returns the number of edges the player owns.
func (g *Game) RoadCount(player int) int {
	count := 0
	for i := range g.Board.Edges {
		if g.Board.Edges[i].Owner == player {
			count++
		}
	}
	return count
}

func (p *Player) canAfford(cost map[Resource]int) bool {
	for r, n := range cost {
		if p.Resources[r] < n {
			return false
		}
	}
	return true
}

func (p *Player) pay(cost map[Resource]int) {
	for r, n := range cost {
		p.Resources[r] -= n
	}
}

// recomputeVP refreshes every player's derived victory points:
// 1 per town, 2 per city, 2 per bonus flag, 1 per victory-point card.
func (g *Game) recomputeVP() {
	for _, p := range g.Players {
		towns, cities := g.Buildings(p.ID)
		vp := towns + 2*cities
		if p.LongestRoad {
			vp += 2
		}
		if p.LargestArmy {
			vp += 2
		}
		for _, c := range p.DevCards {
			if c.Type == CardVictoryPoint {
				vp++
			}
		}
		p.VP = vp
	}
}

// checkWinner marks the first player observed with 10+ derived points.
func (g *Game) checkWinner() {
	if g.Winner >= 0 {
		return
	}
	for _, p := range g.Players {
		if p.VP >= 10 {
			g.Winner = p.ID
			g.Events = append(g.Events, Event{
				Action: eventGameWon, Player: p.ID,
				Detail: fmt.Sprintf("%s wins with %d victory points", p.Name, p.VP),
			})
			return
		}
	}
}

// nextRoll produces a 2d6 total, honoring any queued forced rolls.
func (g *Game) nextRoll() int {
	if len(g.forcedRolls) > 0 {
		total := g.forcedRolls[0]
		g.forcedRolls = g.forcedRolls[1:]
		return total
	}
	return g.rng.Intn(6) + g.rng.Intn(6) + 2
}
