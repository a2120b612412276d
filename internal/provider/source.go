package provider

import (
	"context"

	"github.com/openhex/settlers/api/pkg/settlers"
)

// Source turns a configured Client into a per-seat proposal source for the
// agent driver.
type Source struct {
	Client Client
}

// NewSource wraps a client.
func NewSource(c Client) *Source { return &Source{Client: c} }

// Propose snapshots the game for the seat, queries the model, and parses the
// reply. notes carries the previous attempt's error text, empty on the first
// try.
func (s *Source) Propose(ctx context.Context, g *settlers.Game, player int, notes string) (Proposal, error) {
	user, err := UserPrompt(BuildSnapshot(g, player), notes)
	if err != nil {
		return Proposal{}, err
	}
	reply, err := s.Client.Complete(ctx, SystemPrompt(), user)
	if err != nil {
		return Proposal{}, err
	}
	return ParseProposal(reply)
}
