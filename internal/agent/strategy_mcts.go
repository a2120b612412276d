package agent

import (
	"math"
	"math/rand"

	"github.com/openhex/settlers/api/pkg/settlers"
)

const ucbC = 1.35

// MCTSStrategy runs UCB1 tree search over the approximate forward model with
// short heuristic rollouts. The final pick is the robust child (most visits).
type MCTSStrategy struct {
	Iterations   int
	RolloutDepth int
}

func (MCTSStrategy) Name() string { return "mcts" }

type mctsNode struct {
	action   settlers.Action
	parent   *mctsNode
	children []*mctsNode
	untried  []settlers.Action
	visits   int
	value    float64
}

func (s MCTSStrategy) ChooseAction(g *settlers.Game, player int) settlers.Action {
	rootActions := g.LegalActions(player).All()
	if len(rootActions) == 0 {
		return settlers.Action{Type: settlers.ActionEndTurn}
	}
	if len(rootActions) == 1 {
		return rootActions[0]
	}
	rng := rand.New(rand.NewSource(rngInt63()))
	root := &mctsNode{untried: rootActions}

	for i := 0; i < s.Iterations; i++ {
		node := root
		sim := g.Clone()

		// Selection: walk fully-expanded nodes by UCB1.
		for len(node.untried) == 0 && len(node.children) > 0 {
			node = node.selectChild()
			sim.ApplySim(node.action, rng)
		}

		// Expansion.
		if len(node.untried) > 0 {
			j := rng.Intn(len(node.untried))
			a := node.untried[j]
			node.untried = append(node.untried[:j], node.untried[j+1:]...)
			sim.ApplySim(a, rng)
			child := &mctsNode{action: a, parent: node, untried: sim.LegalActions(sim.Current).All()}
			node.children = append(node.children, child)
			node = child
		}

		// Rollout: short heuristic playout, then evaluate.
		value := s.rollout(sim, player, rng)
		for n := node; n != nil; n = n.parent {
			n.visits++
			n.value += value
		}
	}

	best := root.children[0]
	for _, c := range root.children {
		if c.visits > best.visits {
			best = c
		}
	}
	return best.action
}

func (n *mctsNode) selectChild() *mctsNode {
	logN := math.Log(float64(n.visits) + 1)
	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		score := c.value/float64(c.visits) + ucbC*math.Sqrt(logN/float64(c.visits))
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// rollout plays a few greedy actions on the simulation and squashes the
// resulting evaluation into [0, 1] for the UCB averages.
func (s MCTSStrategy) rollout(sim *settlers.Game, player int, rng *rand.Rand) float64 {
	h := HeuristicStrategy{}
	for i := 0; i < s.RolloutDepth && sim.Winner < 0; i++ {
		a := h.ChooseAction(sim, sim.Current)
		sim.ApplySim(a, rng)
	}
	return 1 / (1 + math.Exp(-evaluateState(sim, player)/10))
}
