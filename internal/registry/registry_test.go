package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhex/settlers/api/internal/model"
	"github.com/openhex/settlers/api/pkg/settlers"
)

func seed(v int64) *int64 { return &v }

func TestCreateDefaultsAndSeats(t *testing.T) {
	r := New()

	s, err := r.Create(model.CreateGameRequest{
		Seed: seed(9),
		Players: []model.SeatConfig{
			{Name: "alice", Kind: "human"},
			{Kind: "llm"},
			{Kind: "algorithm", Algorithm: "mcts"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	require.Len(t, s.Game.Players, 3)

	assert.Equal(t, "alice", s.Game.Players[0].Name)
	assert.Equal(t, settlers.AgentHuman, s.Game.Players[0].Kind)
	assert.Equal(t, settlers.AgentLLM, s.Game.Players[1].Kind)
	assert.Equal(t, settlers.AgentAlgorithm, s.Game.Players[2].Kind)
	assert.Equal(t, "mcts", s.Seats[2].Algorithm)
}

func TestCreateMissingSeatsDefaultHuman(t *testing.T) {
	r := New()

	s, err := r.Create(model.CreateGameRequest{
		NumPlayers: 4,
		Seed:       seed(9),
		Players:    []model.SeatConfig{{Kind: "algorithm"}},
	})
	require.NoError(t, err)
	require.Len(t, s.Game.Players, 4)
	assert.Equal(t, settlers.AgentAlgorithm, s.Game.Players[0].Kind)
	for i := 1; i < 4; i++ {
		assert.Equal(t, settlers.AgentHuman, s.Game.Players[i].Kind)
	}
}

func TestCreateRejectsBadRequests(t *testing.T) {
	r := New()

	_, err := r.Create(model.CreateGameRequest{NumPlayers: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = r.Create(model.CreateGameRequest{NumPlayers: 5})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = r.Create(model.CreateGameRequest{
		NumPlayers: 2,
		Players:    []model.SeatConfig{{}, {}, {}},
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = r.Create(model.CreateGameRequest{
		NumPlayers: 2,
		Players:    []model.SeatConfig{{Kind: "wizard"}},
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGetDeleteList(t *testing.T) {
	r := New()

	a, err := r.Create(model.CreateGameRequest{NumPlayers: 2, Seed: seed(1)})
	require.NoError(t, err)
	b, err := r.Create(model.CreateGameRequest{NumPlayers: 2, Seed: seed(2)})
	require.NoError(t, err)

	got, err := r.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	assert.Len(t, r.List(), 2)

	require.NoError(t, r.Delete(a.ID))
	_, err = r.Get(a.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.ErrorIs(t, r.Delete(a.ID), ErrGameNotFound)

	_, err = r.Get(b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.DeleteAll())
	assert.Empty(t, r.List())
}

func TestSessionWithLock(t *testing.T) {
	r := New()
	s, err := r.Create(model.CreateGameRequest{NumPlayers: 2, Seed: seed(3)})
	require.NoError(t, err)

	ran := false
	s.WithLock(func() { ran = true })
	assert.True(t, ran)

	l := s.Locker()
	l.Lock()
	l.Unlock()
}
