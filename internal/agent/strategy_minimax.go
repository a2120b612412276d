package agent

import (
	"math"
	"math/rand"

	"github.com/openhex/settlers/api/pkg/settlers"
)

// MinimaxStrategy searches a shallow alpha-beta tree over the approximate
// forward model. Chance (dice) is approximated by the model's own rng, so the
// search is best-effort rather than exact expectimax.
type MinimaxStrategy struct {
	Depth int
}

func (MinimaxStrategy) Name() string { return "minimax" }

func (s MinimaxStrategy) ChooseAction(g *settlers.Game, player int) settlers.Action {
	actions := g.LegalActions(player).All()
	if len(actions) == 0 {
		return settlers.Action{Type: settlers.ActionEndTurn}
	}
	rng := rand.New(rand.NewSource(rngInt63()))

	best := actions[0]
	bestScore := math.Inf(-1)
	for _, a := range actions {
		c := g.Clone()
		c.ApplySim(a, rng)
		score := s.alphabeta(c, player, s.Depth-1, math.Inf(-1), math.Inf(1), rng)
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}

func (s MinimaxStrategy) alphabeta(g *settlers.Game, player, depth int, alpha, beta float64, rng *rand.Rand) float64 {
	if depth <= 0 || g.Winner >= 0 {
		return evaluateState(g, player)
	}
	actions := g.LegalActions(g.Current).All()
	if len(actions) == 0 {
		return evaluateState(g, player)
	}

	if g.Current == player {
		value := math.Inf(-1)
		for _, a := range actions {
			c := g.Clone()
			c.ApplySim(a, rng)
			value = math.Max(value, s.alphabeta(c, player, depth-1, alpha, beta, rng))
			alpha = math.Max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		return value
	}

	value := math.Inf(1)
	for _, a := range actions {
		c := g.Clone()
		c.ApplySim(a, rng)
		value = math.Min(value, s.alphabeta(c, player, depth-1, alpha, beta, rng))
		beta = math.Min(beta, value)
		if alpha >= beta {
			break
		}
	}
	return value
}
