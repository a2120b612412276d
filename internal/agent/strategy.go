package agent

import "github.com/openhex/settlers/api/pkg/settlers"

// Strategy picks one action for a seat. The returned action is always taken
// from the legal set for that player.
type Strategy interface {
	Name() string
	ChooseAction(g *settlers.Game, player int) settlers.Action
}

// Params tunes the search strategies. Zero values fall back to the defaults.
type Params struct {
	Iterations   int // mcts iterations per decision
	Depth        int // minimax lookahead in plies
	RolloutDepth int // mcts playout length
}

// ForMode returns the strategy for an algorithm seat's configured mode.
// Unknown modes get the heuristic.
func ForMode(mode string, p Params) Strategy {
	switch mode {
	case "minimax":
		d := p.Depth
		if d <= 0 {
			d = 2
		}
		return &MinimaxStrategy{Depth: d}
	case "mcts":
		it := p.Iterations
		if it <= 0 {
			it = 220
		}
		rd := p.RolloutDepth
		if rd <= 0 {
			rd = 4
		}
		return &MCTSStrategy{Iterations: it, RolloutDepth: rd}
	default:
		return &HeuristicStrategy{}
	}
}
