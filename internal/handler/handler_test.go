package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhex/settlers/api/internal/model"
	"github.com/openhex/settlers/api/internal/registry"
)

func newTestMux(t *testing.T) (*http.ServeMux, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	hub := NewHub()
	gh := NewGameHandler(reg, hub)
	ph := NewProviderHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/games", gh.CreateGame)
	mux.HandleFunc("GET /api/v1/games", gh.ListGames)
	mux.HandleFunc("DELETE /api/v1/games", gh.DeleteAllGames)
	mux.HandleFunc("GET /api/v1/games/{id}", gh.GetGame)
	mux.HandleFunc("DELETE /api/v1/games/{id}", gh.DeleteGame)
	mux.HandleFunc("POST /api/v1/games/{id}/actions", gh.ApplyAction)
	mux.HandleFunc("POST /api/v1/games/{id}/agent-turn", gh.AgentTurn)
	mux.HandleFunc("POST /api/v1/providers/verify", ph.VerifyCredentials)
	return mux, reg
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, mux *http.ServeMux, req model.CreateGameRequest) model.GameState {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var state model.GameState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func seed(v int64) *int64 { return &v }

func TestCreateGame(t *testing.T) {
	mux, _ := newTestMux(t)

	state := createGame(t, mux, model.CreateGameRequest{
		NumPlayers: 3,
		Seed:       seed(42),
		Players: []model.SeatConfig{
			{Name: "alice", Kind: "human"},
			{Kind: "algorithm", Algorithm: "heuristic"},
		},
	})

	assert.NotEmpty(t, state.ID)
	require.Len(t, state.Players, 3)
	assert.Equal(t, "alice", state.Players[0].Name)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, -1, state.Winner)
	// Initial placement gives every seat two towns.
	for _, p := range state.Players {
		assert.Equal(t, 2, p.Towns)
		assert.Equal(t, 2, p.VictoryPoints)
	}
	// The opening seat still has to roll.
	assert.True(t, state.LegalActions.RollDice)
}

func TestCreateGameRejectsBadConfig(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games", model.CreateGameRequest{NumPlayers: 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/games", model.CreateGameRequest{
		NumPlayers: 2,
		Players:    []model.SeatConfig{{Kind: "wizard"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_request", body["kind"])
}

func TestGetGameNotFound(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/games/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["kind"])
}

func TestListAndDeleteGames(t *testing.T) {
	mux, _ := newTestMux(t)

	a := createGame(t, mux, model.CreateGameRequest{NumPlayers: 2, Seed: seed(1)})
	createGame(t, mux, model.CreateGameRequest{NumPlayers: 2, Seed: seed(2)})

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Games []model.GameSummary `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Games, 2)

	rec = doJSON(t, mux, http.MethodDelete, "/api/v1/games/"+a.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/games/"+a.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodDelete, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var del map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &del))
	assert.Equal(t, 1, del["deleted"])
}

func TestApplyAction(t *testing.T) {
	mux, _ := newTestMux(t)
	state := createGame(t, mux, model.CreateGameRequest{NumPlayers: 2, Seed: seed(7)})

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games/"+state.ID+"/actions", model.ActionRequest{
		Player: 0,
		Action: "rollDice",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		State model.GameState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.State.LastRoll, 2)
	assert.LessOrEqual(t, resp.State.LastRoll, 12)

	// Rolling twice in one turn is a rules rejection, not a server error.
	rec = doJSON(t, mux, http.MethodPost, "/api/v1/games/"+state.ID+"/actions", model.ActionRequest{
		Player: 0,
		Action: "rollDice",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "illegal_action", body["kind"])
}

func TestApplyActionUnknownVerb(t *testing.T) {
	mux, _ := newTestMux(t)
	state := createGame(t, mux, model.CreateGameRequest{NumPlayers: 2, Seed: seed(7)})

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games/"+state.ID+"/actions", model.ActionRequest{
		Player: 0,
		Action: "castFireball",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_request", body["kind"])
}

func TestAgentTurn(t *testing.T) {
	mux, _ := newTestMux(t)
	state := createGame(t, mux, model.CreateGameRequest{
		NumPlayers: 2,
		Seed:       seed(11),
		Players: []model.SeatConfig{
			{Kind: "algorithm", Algorithm: "heuristic"},
			{Kind: "algorithm", Algorithm: "heuristic"},
		},
	})

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games/"+state.ID+"/agent-turn", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		ActionsApplied []json.RawMessage `json:"actionsApplied"`
		State          model.GameState   `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ActionsApplied)
	// Turn passed to the other seat unless the game ended outright.
	if resp.State.Winner < 0 {
		assert.Equal(t, 1, resp.State.Current)
	}
}

func TestAgentTurnRejectsHumanSeat(t *testing.T) {
	mux, _ := newTestMux(t)
	state := createGame(t, mux, model.CreateGameRequest{
		NumPlayers: 2,
		Seed:       seed(11),
		Players:    []model.SeatConfig{{Kind: "human"}, {Kind: "algorithm"}},
	})

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/games/"+state.ID+"/agent-turn", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_agent_seat", body["kind"])
}

func TestVerifyCredentialsRequiresProvider(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/providers/verify", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
