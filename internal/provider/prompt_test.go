package provider

import (
	"strings"
	"testing"

	"github.com/openhex/settlers/api/pkg/settlers"
)

func TestBuildSnapshotHidesOpponentHands(t *testing.T) {
	g, err := settlers.NewGame(3, 5)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	g.Players[0].Resources[settlers.Wood] = 2
	g.Players[1].Resources[settlers.Ore] = 4
	g.Players[1].Resources[settlers.Wheat] = 1

	snap := BuildSnapshot(g, 0)

	if snap.You != 0 {
		t.Errorf("expected you=0, got %d", snap.You)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(snap.Players))
	}
	if snap.Players[0].Resources == nil {
		t.Error("own resources should be visible")
	}
	if snap.Players[0].CardTotal != 2 {
		t.Errorf("expected own card total 2, got %d", snap.Players[0].CardTotal)
	}
	if snap.Players[1].Resources != nil {
		t.Error("opponent resources should be hidden")
	}
	if snap.Players[1].CardTotal != 5 {
		t.Errorf("expected opponent card total 5, got %d", snap.Players[1].CardTotal)
	}
}

func TestBuildSnapshotExcludesWaterTiles(t *testing.T) {
	g, err := settlers.NewGame(2, 5)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	snap := BuildSnapshot(g, 0)

	if len(snap.Tiles) != 19 {
		t.Errorf("expected 19 land tiles, got %d", len(snap.Tiles))
	}
	for _, tv := range snap.Tiles {
		if tv.Resource == settlers.Water {
			t.Errorf("tile %d is water", tv.ID)
		}
	}
	robbers := 0
	for _, tv := range snap.Tiles {
		if tv.HasRobber {
			robbers++
		}
	}
	if robbers != 1 {
		t.Errorf("expected exactly one robber tile, got %d", robbers)
	}
}

func TestBuildSnapshotOpenNodesExcludeBuilt(t *testing.T) {
	g, err := settlers.NewGame(2, 5)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	snap := BuildSnapshot(g, 0)

	built := make(map[int]bool)
	for _, n := range g.Board.Nodes {
		if n.Building != nil {
			built[n.ID] = true
		}
	}
	for _, nv := range snap.OpenNodes {
		if built[nv.ID] {
			t.Errorf("node %d has a building but is listed open", nv.ID)
		}
	}
}

func TestUserPromptAppendsNotes(t *testing.T) {
	g, err := settlers.NewGame(2, 5)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	snap := BuildSnapshot(g, 0)

	clean, err := UserPrompt(snap, "")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if strings.Contains(clean, "previous proposal failed") {
		t.Error("clean prompt should carry no failure note")
	}

	retry, err := UserPrompt(snap, "illegal buildTown: node occupied")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(retry, "node occupied") {
		t.Error("retry prompt should carry the failure note")
	}
}
