// Command selfplay runs headless algorithm-vs-algorithm matches and prints a
// win table. Useful for tuning strategy parameters without a server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/agent"
	"github.com/openhex/settlers/api/pkg/settlers"
)

type matchResult struct {
	Game     int    `json:"game"`
	Seed     int64  `json:"seed"`
	Winner   int    `json:"winner"`
	Strategy string `json:"strategy,omitempty"`
	Turns    int    `json:"turns"`
	VPs      []int  `json:"vps"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var (
		seatCfg  string
		numGames int
		workers  int
		maxTurns int
		seed     int64
		jsonOut  bool
	)

	flag.StringVar(&seatCfg, "seats", "heuristic,heuristic", "Comma-separated strategies per seat (heuristic|minimax|mcts)")
	flag.IntVar(&numGames, "n", 1, "Number of games to run")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel games)")
	flag.IntVar(&maxTurns, "max-turns", 400, "Max turns before declaring a draw")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = time-derived)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.Parse()

	seats := strings.Split(seatCfg, ",")
	if len(seats) < 2 || len(seats) > 4 {
		log.Fatal().Str("seats", seatCfg).Msg("need 2 to 4 seats")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make([]*matchResult, numGames)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := runMatch(idx, seed+int64(idx), seats, maxTurns)
			if err != nil {
				log.Error().Err(err).Int("game", idx+1).Msg("Game failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			log.Info().Int("game", idx+1).Int("winner", result.Winner).
				Str("strategy", result.Strategy).Int("turns", result.Turns).
				Msg("Game completed")
		}(i)
	}

	wg.Wait()

	if jsonOut {
		printJSON(results, numGames, errCount)
	} else {
		printSummary(results, seats, errCount)
	}
}

// runMatch plays one game to completion or the turn cap.
func runMatch(idx int, seed int64, seats []string, maxTurns int) (*matchResult, error) {
	g, err := settlers.NewGame(len(seats), seed)
	if err != nil {
		return nil, err
	}

	drivers := make([]*agent.Driver, len(seats))
	for i, name := range seats {
		drivers[i] = &agent.Driver{Strategy: agent.ForMode(name, agent.Params{})}
		g.Players[i].Kind = settlers.AgentAlgorithm
		g.Players[i].Name = fmt.Sprintf("%s-%d", name, i)
	}

	ctx := context.Background()
	for g.Winner < 0 && g.Turn < maxTurns {
		seat := g.Current
		if _, err := drivers[seat].RunTurn(ctx, g, seat); err != nil {
			return nil, fmt.Errorf("game %d seat %d: %w", idx+1, seat, err)
		}
		if g.Current == seat && g.Winner < 0 {
			return nil, fmt.Errorf("game %d seat %d stalled at turn %d", idx+1, seat, g.Turn)
		}
	}

	result := &matchResult{Game: idx + 1, Seed: seed, Winner: g.Winner, Turns: g.Turn}
	for _, p := range g.Players {
		result.VPs = append(result.VPs, p.VP)
	}
	if g.Winner >= 0 {
		result.Strategy = seats[g.Winner]
	}
	return result, nil
}

func printSummary(results []*matchResult, seats []string, errCount int) {
	type stats struct {
		wins    int
		totalVP int
		games   int
	}
	bySeat := make([]stats, len(seats))

	completed, draws, totalTurns := 0, 0, 0
	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		totalTurns += r.Turns
		if r.Winner < 0 {
			draws++
		}
		for i := range seats {
			bySeat[i].games++
			if i < len(r.VPs) {
				bySeat[i].totalVP += r.VPs[i]
			}
			if r.Winner == i {
				bySeat[i].wins++
			}
		}
	}

	fmt.Printf("\nResults (%d games, %d draws):\n", completed, draws)
	if errCount > 0 {
		fmt.Printf("  (%d games failed)\n", errCount)
	}
	for i, name := range seats {
		s := bySeat[i]
		avgVP := 0.0
		if s.games > 0 {
			avgVP = float64(s.totalVP) / float64(s.games)
		}
		fmt.Printf("  seat %d %-10s  %d wins  -- avg VP: %.1f\n", i, name, s.wins, avgVP)
	}
	if completed > 0 {
		fmt.Printf("  avg game length: %.1f turns\n", float64(totalTurns)/float64(completed))
	}
}

func printJSON(results []*matchResult, total, errCount int) {
	out := struct {
		Total   int            `json:"total"`
		Errors  int            `json:"errors"`
		Results []*matchResult `json:"results"`
	}{
		Total:   total,
		Errors:  errCount,
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
