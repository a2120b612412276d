// Package model holds the API-facing records: requests coming off the wire
// and the derived projections handed back to clients.
package model

import (
	"time"

	"github.com/openhex/settlers/api/internal/provider"
	"github.com/openhex/settlers/api/pkg/settlers"
)

// AlgorithmParams tunes an algorithm seat. Zero values use the defaults.
type AlgorithmParams struct {
	Iterations   int `json:"iterations,omitempty"`
	Depth        int `json:"depth,omitempty"`
	RolloutDepth int `json:"rolloutDepth,omitempty"`
}

// SeatConfig describes who or what plays one seat.
type SeatConfig struct {
	Name      string          `json:"name,omitempty"`
	Kind      string          `json:"agentKind"`           // human | llm | algorithm
	Algorithm string          `json:"algorithm,omitempty"` // heuristic | minimax | mcts
	Params    AlgorithmParams `json:"params,omitempty"`
	Provider  provider.Config `json:"provider,omitempty"` // llm seats only
}

// CreateGameRequest creates a session. Seed is optional; omitted means a
// time-derived seed. Players may be shorter than NumPlayers; missing seats
// default to human.
type CreateGameRequest struct {
	NumPlayers int          `json:"numPlayers"`
	Seed       *int64       `json:"seed,omitempty"`
	Players    []SeatConfig `json:"players,omitempty"`
}

// ActionRequest is one manual move.
type ActionRequest struct {
	Player  int            `json:"playerId"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// PlayerView is the UI-ready projection of a seat: raw counters plus the
// derived totals clients would otherwise recompute.
type PlayerView struct {
	ID            int                       `json:"id"`
	Name          string                    `json:"name"`
	Color         string                    `json:"color"`
	Kind          settlers.AgentKind        `json:"agentKind"`
	Resources     map[settlers.Resource]int `json:"resources"`
	Towns         int                       `json:"towns"`
	Cities        int                       `json:"cities"`
	Roads         int                       `json:"roads"`
	DevCardCount  int                       `json:"devCardCount"`
	DevCards      []settlers.DevCard        `json:"devCards"`
	KnightsPlayed int                       `json:"knightsPlayed"`
	LongestRoad   bool                      `json:"longestRoad"`
	LargestArmy   bool                      `json:"largestArmy"`
	HasRolled     bool                      `json:"hasRolled"`
	VictoryPoints int                       `json:"victoryPoints"`
}

// GameState is the full projection of one session.
type GameState struct {
	ID             string                `json:"id"`
	Board          *settlers.Board       `json:"board"`
	Players        []PlayerView          `json:"players"`
	Current        int                   `json:"current"`
	Turn           int                   `json:"turn"`
	LastRoll       int                   `json:"lastRoll"`
	LastProduction []settlers.Production `json:"lastProduction,omitempty"`
	RobberPending  bool                  `json:"robberPending"`
	Winner         int                   `json:"winner"`
	Events         []settlers.Event      `json:"events,omitempty"`
	LegalActions   settlers.ActionSet    `json:"legalActions"`
}

// GameSummary is the list-endpoint projection.
type GameSummary struct {
	ID         string    `json:"id"`
	NumPlayers int       `json:"numPlayers"`
	Turn       int       `json:"turn"`
	Winner     int       `json:"winner"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProjectState derives the client view of a game.
func ProjectState(id string, g *settlers.Game) GameState {
	state := GameState{
		ID:             id,
		Board:          g.Board,
		Current:        g.Current,
		Turn:           g.Turn,
		LastRoll:       g.LastRoll,
		LastProduction: g.LastProduction,
		RobberPending:  g.RobberPending,
		Winner:         g.Winner,
		Events:         g.Events,
		LegalActions:   g.LegalActions(g.Current),
	}
	for _, p := range g.Players {
		towns, cities := g.Buildings(p.ID)
		state.Players = append(state.Players, PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Color:         p.Color,
			Kind:          p.Kind,
			Resources:     p.Resources,
			Towns:         towns,
			Cities:        cities,
			Roads:         g.RoadCount(p.ID),
			DevCardCount:  len(p.DevCards),
			DevCards:      p.DevCards,
			KnightsPlayed: p.KnightsPlayed,
			LongestRoad:   p.LongestRoad,
			LargestArmy:   p.LargestArmy,
			HasRolled:     p.HasRolled,
			VictoryPoints: p.VP,
		})
	}
	return state
}
