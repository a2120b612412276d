package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/agent"
	"github.com/openhex/settlers/api/internal/model"
	"github.com/openhex/settlers/api/internal/provider"
	"github.com/openhex/settlers/api/internal/registry"
	"github.com/openhex/settlers/api/pkg/settlers"
)

// GameHandler serves the game lifecycle and action endpoints.
type GameHandler struct {
	registry *registry.Registry
	hub      *Hub
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(reg *registry.Registry, hub *Hub) *GameHandler {
	return &GameHandler{registry: reg, hub: hub}
}

// CreateGame handles POST /api/v1/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return
	}
	s, err := h.registry.Create(req)
	if err != nil {
		respondError(w, err)
		return
	}
	var state model.GameState
	s.WithLock(func() { state = model.ProjectState(s.ID, s.Game) })
	writeJSON(w, http.StatusCreated, state)
}

// ListGames handles GET /api/v1/games
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	sessions := h.registry.List()
	summaries := make([]model.GameSummary, 0, len(sessions))
	for _, s := range sessions {
		s.WithLock(func() {
			summaries = append(summaries, model.GameSummary{
				ID:         s.ID,
				NumPlayers: len(s.Game.Players),
				Turn:       s.Game.Turn,
				Winner:     s.Game.Winner,
				CreatedAt:  s.CreatedAt,
			})
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": summaries})
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var state model.GameState
	s.WithLock(func() { state = model.ProjectState(s.ID, s.Game) })
	writeJSON(w, http.StatusOK, state)
}

// DeleteGame handles DELETE /api/v1/games/{id}
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.registry.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.hub.BroadcastToGame(id, WSEvent{Type: EventGameDeleted, GameID: id})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteAllGames handles DELETE /api/v1/games
func (h *GameHandler) DeleteAllGames(w http.ResponseWriter, r *http.Request) {
	n := h.registry.DeleteAll()
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// ApplyAction handles POST /api/v1/games/{id}/actions — one manual move.
func (h *GameHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req model.ActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return
	}
	action, err := settlers.ParseAction(req.Action, req.Payload)
	if err != nil {
		respondError(w, err)
		return
	}

	var ev settlers.Event
	var state model.GameState
	var applyErr error
	s.WithLock(func() {
		ev, applyErr = s.Game.Apply(req.Player, action)
		if applyErr == nil {
			state = model.ProjectState(s.ID, s.Game)
		}
	})
	if applyErr != nil {
		respondError(w, applyErr)
		return
	}

	h.broadcast(s.ID, []settlers.Event{ev}, state)
	writeJSON(w, http.StatusOK, map[string]any{"event": ev, "state": state})
}

// AgentTurn handles POST /api/v1/games/{id}/agent-turn — runs the driver for
// the current non-human seat. Failures are partial: whatever was applied
// before the failure is reported alongside the error.
func (h *GameHandler) AgentTurn(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	var seat int
	var kind settlers.AgentKind
	var cfg model.SeatConfig
	s.WithLock(func() {
		seat = s.Game.Current
		kind = s.Game.Players[seat].Kind
		cfg = s.Seats[seat]
	})
	if kind == settlers.AgentHuman {
		respondError(w, registry.ErrNotAgentSeat)
		return
	}

	d := &agent.Driver{
		Strategy: agent.ForMode(cfg.Algorithm, agent.Params{
			Iterations:   cfg.Params.Iterations,
			Depth:        cfg.Params.Depth,
			RolloutDepth: cfg.Params.RolloutDepth,
		}),
		Lock: s.Locker(),
	}
	if kind == settlers.AgentLLM {
		client, err := provider.New(cfg.Provider)
		if err != nil {
			respondError(w, err)
			return
		}
		d.Source = provider.NewSource(client)
	}

	applied, runErr := d.RunTurn(r.Context(), s.Game, seat)

	var state model.GameState
	var events []settlers.Event
	s.WithLock(func() {
		state = model.ProjectState(s.ID, s.Game)
	})
	for _, a := range applied {
		events = append(events, a.Event)
	}
	h.broadcast(s.ID, events, state)

	if runErr != nil {
		status, errKind := errorStatus(runErr)
		log.Error().Str("gameId", s.ID).Int("seat", seat).Err(runErr).
			Msg("agent turn failed partway")
		writeJSON(w, status, map[string]any{
			"actionsApplied": applied,
			"state":          state,
			"error":          runErr.Error(),
			"kind":           errKind,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actionsApplied": applied, "state": state})
}

// broadcast pushes the applied events to the game's WebSocket subscribers.
func (h *GameHandler) broadcast(gameID string, events []settlers.Event, state model.GameState) {
	if h.hub == nil {
		return
	}
	for _, ev := range events {
		h.hub.BroadcastToGame(gameID, WSEvent{
			Type:   EventActionApplied,
			GameID: gameID,
			Data:   map[string]any{"event": ev, "current": state.Current, "turn": state.Turn},
		})
		if ev.Action == settlers.ActionEndTurn {
			h.hub.BroadcastToGame(gameID, WSEvent{
				Type:   EventTurnEnded,
				GameID: gameID,
				Data:   map[string]any{"current": state.Current, "turn": state.Turn},
			})
		}
	}
	if state.Winner >= 0 {
		h.hub.BroadcastToGame(gameID, WSEvent{
			Type:   EventGameEnded,
			GameID: gameID,
			Data:   map[string]any{"winner": state.Winner},
		})
	}
}
