package provider

import (
	"encoding/json"
	"fmt"

	"github.com/openhex/settlers/api/pkg/settlers"
)

// Snapshot is the compact board projection an LLM reasons over. Every id a
// proposal refers to is an index into these arrays.
type Snapshot struct {
	You       int                `json:"you"`
	Turn      int                `json:"turn"`
	LastRoll  int                `json:"lastRoll"`
	RobberHex int                `json:"robberHex"`
	Tiles     []TileView         `json:"tiles"`
	OpenNodes []NodeView         `json:"openNodes"`
	OpenEdges []EdgeView         `json:"openEdges"`
	Players   []SeatView         `json:"players"`
	Legal     settlers.ActionSet `json:"legalActions"`
}

type TileView struct {
	ID        int               `json:"id"`
	Resource  settlers.Resource `json:"resource"`
	Number    int               `json:"number,omitempty"`
	HasRobber bool              `json:"hasRobber,omitempty"`
}

type NodeView struct {
	ID    int   `json:"id"`
	Tiles []int `json:"tiles"`
}

type EdgeView struct {
	ID int `json:"id"`
	A  int `json:"a"`
	B  int `json:"b"`
}

type SeatView struct {
	ID          int                       `json:"id"`
	Resources   map[settlers.Resource]int `json:"resources,omitempty"` // own seat only
	CardTotal   int                       `json:"cardTotal"`
	DevCards    int                       `json:"devCards"`
	VP          int                       `json:"victoryPoints"`
	HasRolled   bool                      `json:"hasRolled"`
	RobberMoved bool                      `json:"robberMoved"`
}

// BuildSnapshot projects the game for one seat. Opponent hands are reduced to
// counts; the seat's own resources come through in full.
func BuildSnapshot(g *settlers.Game, player int) Snapshot {
	snap := Snapshot{
		You:       player,
		Turn:      g.Turn,
		LastRoll:  g.LastRoll,
		RobberHex: g.Board.RobberTile(),
		Legal:     g.LegalActions(player),
	}

	for _, t := range g.Board.Tiles {
		if t.Resource == settlers.Water {
			continue
		}
		snap.Tiles = append(snap.Tiles, TileView{
			ID: t.ID, Resource: t.Resource, Number: t.Number, HasRobber: t.HasRobber,
		})
	}
	for _, n := range g.Board.Nodes {
		if n.Building != nil || !n.CanBuild {
			continue
		}
		snap.OpenNodes = append(snap.OpenNodes, NodeView{ID: n.ID, Tiles: n.Tiles})
	}
	for _, e := range g.Board.Edges {
		if e.Owner >= 0 {
			continue
		}
		snap.OpenEdges = append(snap.OpenEdges, EdgeView{ID: e.ID, A: e.A, B: e.B})
	}
	for _, p := range g.Players {
		sv := SeatView{
			ID: p.ID, VP: p.VP, DevCards: len(p.DevCards),
			HasRolled: p.HasRolled, RobberMoved: p.RobberMoved,
		}
		for _, r := range settlers.TradeResources {
			sv.CardTotal += p.Resources[r]
		}
		if p.ID == player {
			sv.Resources = p.Resources
		}
		snap.Players = append(snap.Players, sv)
	}
	return snap
}

// SystemPrompt fixes the reply contract for every provider.
func SystemPrompt() string {
	return `You are playing a hex-board settlement strategy game. Each turn you roll dice, ` +
		`collect resources, and spend them on roads (1 wood 1 brick), towns (1 wood 1 brick ` +
		`1 wheat 1 sheep), cities (2 wheat 3 ore), and development cards (1 sheep 1 wheat 1 ore). ` +
		`First to 10 victory points wins.

Reply with exactly one JSON object and nothing else:
{"action": "<name>", "payload": {...}, "reason": "<short>", "confidence": <0..1>}

Valid actions: rollDice, moveRobber {hexId}, buildRoad {edgeId}, buildTown {nodeId}, ` +
		`buildCity {nodeId}, harborTrade {give, receive}, buyDevCard, playKnight, ` +
		`playRoadBuilding, playYearOfPlenty {resource1, resource2}, playMonopoly {resource}, endTurn.

Only propose actions listed under legalActions in the snapshot. Ids refer to the snapshot arrays.`
}

// UserPrompt renders the snapshot, appending the previous attempt's error so
// the model can correct itself on a retry.
func UserPrompt(snap Snapshot, notes string) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	prompt := "Game state:\n" + string(raw) + "\n\nChoose your next action."
	if notes != "" {
		prompt += "\n\nYour previous proposal failed: " + notes + "\nPick a different, legal action."
	}
	return prompt, nil
}
