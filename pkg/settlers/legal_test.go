package settlers

import (
	"math/rand"
	"testing"
)

func TestLegalActions_PreRoll(t *testing.T) {
	g := newBareGame(t, 2)
	s := g.LegalActions(0)
	if !s.RollDice || !s.EndTurn {
		t.Error("pre-roll turn must offer rollDice and endTurn")
	}
	if len(s.BuildTown) > 0 || len(s.BuildRoad) > 0 || s.BuyDevCard || s.PlayKnight {
		t.Error("pre-roll turn offered main-phase actions")
	}

	if out := g.LegalActions(1); out.RollDice || out.EndTurn {
		t.Error("legal actions offered to the waiting player")
	}
}

func TestLegalActions_RobberPending(t *testing.T) {
	g := newBareGame(t, 2)
	g.forcedRolls = []int{7}
	if _, err := g.RollDice(0); err != nil {
		t.Fatal(err)
	}
	s := g.LegalActions(0)
	if len(s.MoveRobber) == 0 {
		t.Fatal("no robber destinations offered")
	}
	robber := g.Board.RobberTile()
	for _, h := range s.MoveRobber {
		if h == robber {
			t.Error("current robber tile offered as a destination")
		}
	}
	if len(s.BuildTown) > 0 || s.BuyDevCard {
		t.Error("main-phase actions offered while the robber is owed")
	}
}

func TestLegalActions_Affordability(t *testing.T) {
	g := newBareGame(t, 2)
	p := g.Players[0]
	p.HasRolled = true

	s := g.LegalActions(0)
	if len(s.BuildTown) > 0 || len(s.BuildRoad) > 0 || s.BuyDevCard || len(s.HarborTrades) > 0 {
		t.Error("broke player offered purchases")
	}

	p.Resources[Wood] = 1
	p.Resources[Brick] = 1
	g.Board.Nodes[10].Building = &Building{Owner: 0, Type: TownBuilding}
	s = g.LegalActions(0)
	if len(s.BuildRoad) == 0 {
		t.Error("affordable connected road not offered")
	}
	if len(s.BuildTown) > 0 {
		t.Error("unaffordable town offered")
	}
}

// Every action the generator lists must apply cleanly. Random playouts across
// a few seeds exercise the whole vocabulary.
func TestLegalActions_AlwaysApply(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		g, err := NewGame(3, seed)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(seed))

		for step := 0; step < 400 && g.Winner < 0; step++ {
			all := g.LegalActions(g.Current).All()
			if len(all) == 0 {
				t.Fatalf("seed %d step %d: no legal actions for player %d", seed, step, g.Current)
			}
			a := all[rng.Intn(len(all))]
			if _, err := g.Apply(g.Current, a); err != nil {
				t.Fatalf("seed %d step %d: listed action %+v rejected: %v", seed, step, a, err)
			}
		}
	}
}

func TestActionSet_AllOrdersEndTurnLast(t *testing.T) {
	g := newBareGame(t, 2)
	g.Players[0].HasRolled = true
	g.Players[0].Resources[Wood] = 4

	all := g.LegalActions(0).All()
	if len(all) == 0 {
		t.Fatal("no actions listed")
	}
	if all[len(all)-1].Type != ActionEndTurn {
		t.Errorf("last listed action is %s, want endTurn", all[len(all)-1].Type)
	}
}
