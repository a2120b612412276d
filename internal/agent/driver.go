package agent

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/provider"
	"github.com/openhex/settlers/api/pkg/settlers"
)

const (
	// MaxActionsPerTurn bounds one agent turn; the driver closes the turn
	// itself when the budget runs out.
	MaxActionsPerTurn = 8
	// MaxLLMAttempts bounds proposal retries per sub-action.
	MaxLLMAttempts = 3
)

// ProposalSource supplies raw proposals for an LLM seat. notes carries the
// previous attempt's error text so the model can correct itself.
type ProposalSource interface {
	Propose(ctx context.Context, g *settlers.Game, player int, notes string) (provider.Proposal, error)
}

// Applied is one successfully applied sub-action of an agent turn.
type Applied struct {
	Action settlers.Action `json:"action"`
	Event  settlers.Event  `json:"event"`
}

// Driver runs one full turn for a non-human seat. It never touches game state
// except through the engine's Apply, re-acquiring Lock for every sub-action so
// readers can interleave while a provider call is in flight.
type Driver struct {
	Strategy Strategy       // decision policy for algorithm seats and overrides
	Source   ProposalSource // set only for llm seats
	Lock     sync.Locker    // optional; held across each snapshot and apply
}

// RunTurn drives the seat until it passes, loses control, wins, or exhausts
// the action budget. Whatever was applied before a failure stays applied and
// is returned alongside the error.
func (d *Driver) RunTurn(ctx context.Context, g *settlers.Game, player int) ([]Applied, error) {
	strategy := d.Strategy
	if strategy == nil {
		strategy = HeuristicStrategy{}
	}
	var applied []Applied

	for i := 0; i < MaxActionsPerTurn; i++ {
		if done := d.turnOver(g, player); done {
			return applied, nil
		}

		action := d.nextAction(ctx, g, player, strategy)
		action = d.override(g, player, action)

		ev, err := d.apply(g, player, action)
		if err != nil {
			action, ev, err = d.fallback(g, player, action, err)
			if err != nil {
				return applied, err
			}
		}
		applied = append(applied, Applied{Action: action, Event: ev})

		if action.Type == settlers.ActionEndTurn || d.turnOver(g, player) {
			return applied, nil
		}
	}

	// Budget exhausted: close the turn so play keeps moving.
	if ev, err := d.apply(g, player, settlers.Action{Type: settlers.ActionEndTurn}); err == nil {
		applied = append(applied, Applied{Action: settlers.Action{Type: settlers.ActionEndTurn}, Event: ev})
	}
	return applied, nil
}

func (d *Driver) turnOver(g *settlers.Game, player int) bool {
	if d.Lock != nil {
		d.Lock.Lock()
		defer d.Lock.Unlock()
	}
	return g.Winner >= 0 || g.Current != player
}

// nextAction obtains one typed action: the strategy's pick for algorithm
// seats, or an LLM proposal with bounded error-augmented retries. Total
// failure degrades to endTurn.
func (d *Driver) nextAction(ctx context.Context, g *settlers.Game, player int, strategy Strategy) settlers.Action {
	if d.Source == nil {
		if d.Lock != nil {
			d.Lock.Lock()
			defer d.Lock.Unlock()
		}
		return strategy.ChooseAction(g, player)
	}

	notes := ""
	for attempt := 1; attempt <= MaxLLMAttempts; attempt++ {
		snap := d.snapshot(g)
		prop, err := d.Source.Propose(ctx, snap, player, notes)
		if err != nil {
			notes = err.Error()
			log.Warn().Int("player", player).Int("attempt", attempt).Err(err).
				Msg("agent proposal failed")
			continue
		}
		action, err := settlers.ParseAction(prop.Action, prop.Payload)
		if err != nil {
			notes = err.Error()
			log.Warn().Int("player", player).Int("attempt", attempt).
				Str("proposal", prop.Action).Err(err).
				Msg("agent proposal unparseable")
			continue
		}
		log.Debug().Int("player", player).Str("action", string(action.Type)).
			Str("reason", prop.Reason).Float64("confidence", prop.Confidence).
			Msg("agent proposal accepted")
		return action
	}
	log.Warn().Int("player", player).Msg("all proposal attempts failed, passing")
	return settlers.Action{Type: settlers.ActionEndTurn}
}

// snapshot clones the game under the lock so the provider call can run on a
// stable copy without blocking other readers.
func (d *Driver) snapshot(g *settlers.Game) *settlers.Game {
	if d.Lock != nil {
		d.Lock.Lock()
		defer d.Lock.Unlock()
	}
	return g.Clone()
}

// override replaces a stalling proposal (pass, or a redundant roll) with the
// heuristic's pick whenever a productive move exists.
func (d *Driver) override(g *settlers.Game, player int, action settlers.Action) settlers.Action {
	if d.Lock != nil {
		d.Lock.Lock()
		defer d.Lock.Unlock()
	}
	stalling := action.Type == settlers.ActionEndTurn ||
		(action.Type == settlers.ActionRollDice && g.Players[player].HasRolled)
	if !stalling {
		return action
	}
	pick := HeuristicStrategy{}.ChooseAction(g, player)
	if pick.Type == settlers.ActionEndTurn {
		return settlers.Action{Type: settlers.ActionEndTurn}
	}
	log.Debug().Int("player", player).Str("proposed", string(action.Type)).
		Str("override", string(pick.Type)).Msg("strategic override")
	return pick
}

func (d *Driver) apply(g *settlers.Game, player int, a settlers.Action) (settlers.Event, error) {
	if d.Lock != nil {
		d.Lock.Lock()
		defer d.Lock.Unlock()
	}
	return g.Apply(player, a)
}

// fallback recovers from an illegal action: placement actions walk the ranked
// candidate list best-first, everything else degrades to a single endTurn.
func (d *Driver) fallback(g *settlers.Game, player int, a settlers.Action, cause error) (settlers.Action, settlers.Event, error) {
	if !settlers.IsRuleError(cause) {
		return a, settlers.Event{}, cause
	}
	log.Debug().Int("player", player).Str("action", string(a.Type)).Err(cause).
		Msg("illegal agent action, using fallback")

	for _, cand := range d.rankedCandidates(g, player, a.Type) {
		if ev, err := d.apply(g, player, cand); err == nil {
			return cand, ev, nil
		}
	}

	pass := settlers.Action{Type: settlers.ActionEndTurn}
	ev, err := d.apply(g, player, pass)
	return pass, ev, err
}

// rankedCandidates lists the legal placements of one action type, best first.
func (d *Driver) rankedCandidates(g *settlers.Game, player int, t settlers.ActionType) []settlers.Action {
	if d.Lock != nil {
		d.Lock.Lock()
		defer d.Lock.Unlock()
	}
	set := g.LegalActions(player)

	var out []settlers.Action
	score := func(a settlers.Action) float64 { return 0 }
	switch t {
	case settlers.ActionBuildTown:
		for _, n := range set.BuildTown {
			out = append(out, settlers.Action{Type: t, NodeID: n})
		}
		score = func(a settlers.Action) float64 { return nodeProductionScore(g.Board, a.NodeID) }
	case settlers.ActionBuildCity:
		for _, n := range set.BuildCity {
			out = append(out, settlers.Action{Type: t, NodeID: n})
		}
		score = func(a settlers.Action) float64 { return nodeProductionScore(g.Board, a.NodeID) }
	case settlers.ActionBuildRoad:
		for _, e := range set.BuildRoad {
			out = append(out, settlers.Action{Type: t, EdgeID: e})
		}
		score = func(a settlers.Action) float64 { return edgeExpansionScore(g, a.EdgeID) }
	case settlers.ActionMoveRobber:
		for _, h := range set.MoveRobber {
			out = append(out, settlers.Action{Type: t, HexID: h})
		}
		score = func(a settlers.Action) float64 { return robberScore(g, player, a.HexID) }
	default:
		return nil
	}

	sort.SliceStable(out, func(i, j int) bool { return score(out[i]) > score(out[j]) })
	return out
}
