// Package registry keeps every live game session in memory and serializes
// mutations per session. There is no persistence: a restart forgets all games.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/model"
	"github.com/openhex/settlers/api/pkg/settlers"
)

var (
	// ErrGameNotFound is returned for lookups of unknown or deleted games.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidConfig is returned when a create request cannot seat a game.
	ErrInvalidConfig = errors.New("invalid game configuration")
	// ErrNotAgentSeat is returned when an agent turn is requested for a
	// human-controlled seat.
	ErrNotAgentSeat = errors.New("current seat is not agent controlled")
)

// Session is one live game plus its seat configuration. All mutations of Game
// must happen under the session lock; WithLock and Locker expose it.
type Session struct {
	ID        string
	CreatedAt time.Time
	Game      *settlers.Game
	Seats     []model.SeatConfig

	mu sync.Mutex
}

// WithLock runs fn with the session's mutation lock held.
func (s *Session) WithLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Locker exposes the session lock for the agent driver, which acquires and
// releases it around every sub-action.
func (s *Session) Locker() sync.Locker { return &s.mu }

// Registry is the id-to-session map. The registry lock only guards the map;
// game state is guarded per session.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Session
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{games: make(map[string]*Session)}
}

var validKinds = map[string]settlers.AgentKind{
	"":          settlers.AgentHuman,
	"human":     settlers.AgentHuman,
	"llm":       settlers.AgentLLM,
	"algorithm": settlers.AgentAlgorithm,
}

// Create validates the request, generates a board, and registers the session.
func (r *Registry) Create(req model.CreateGameRequest) (*Session, error) {
	numPlayers := req.NumPlayers
	if numPlayers == 0 {
		numPlayers = len(req.Players)
	}
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("%w: numPlayers must be between 2 and 4, got %d", ErrInvalidConfig, numPlayers)
	}
	if len(req.Players) > numPlayers {
		return nil, fmt.Errorf("%w: %d seat configs for %d players", ErrInvalidConfig, len(req.Players), numPlayers)
	}
	for i, seat := range req.Players {
		if _, ok := validKinds[seat.Kind]; !ok {
			return nil, fmt.Errorf("%w: seat %d has unknown agentKind %q", ErrInvalidConfig, i, seat.Kind)
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	g, err := settlers.NewGame(numPlayers, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seats := make([]model.SeatConfig, numPlayers)
	copy(seats, req.Players)
	for i, seat := range seats {
		g.Players[i].Kind = validKinds[seat.Kind]
		if seat.Name != "" {
			g.Players[i].Name = seat.Name
		}
	}

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Game:      g,
		Seats:     seats,
	}
	r.mu.Lock()
	r.games[s.ID] = s
	r.mu.Unlock()

	log.Info().Str("gameId", s.ID).Int("players", numPlayers).Int64("seed", seed).
		Msg("game created")
	return s, nil
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

// Delete removes one session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(r.games, id)
	log.Info().Str("gameId", id).Msg("game deleted")
	return nil
}

// DeleteAll removes every session and returns how many there were.
func (r *Registry) DeleteAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.games)
	r.games = make(map[string]*Session)
	return n
}

// List returns the live sessions in no particular order.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.games))
	for _, s := range r.games {
		out = append(out, s)
	}
	return out
}
