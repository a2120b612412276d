package agent

import "math/rand"

// agentRng is the package-level random source used by all strategies.
// When nil, rngInt63 delegates to the global math/rand default.
// Use SeedRng to set a deterministic source for reproducible matches.
var agentRng *rand.Rand

// SeedRng sets a deterministic random source for reproducible agent behavior.
func SeedRng(seed int64) {
	agentRng = rand.New(rand.NewSource(seed))
}

// ResetRng reverts to the default (non-deterministic) global random source.
func ResetRng() {
	agentRng = nil
}

// rngInt63 draws a seed for a strategy's local rand.Rand.
func rngInt63() int64 {
	if agentRng != nil {
		return agentRng.Int63()
	}
	return rand.Int63()
}
