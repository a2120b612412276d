package provider

import (
	"encoding/json"
	"strings"
)

// Proposal is the sanitized form of a model reply: the fixed schema fields,
// everything else dropped.
type Proposal struct {
	Action     string         `json:"action"`
	Payload    map[string]any `json:"payload,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
}

// ParseProposal extracts the JSON object from a raw model reply. Models wrap
// answers in code fences or prose more often than not, so everything outside
// the outermost braces is ignored.
func ParseProposal(raw string) (Proposal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return Proposal{}, &Error{Kind: KindParse, Provider: "proposal", Message: "no JSON object in reply"}
	}

	var p Proposal
	if err := json.Unmarshal([]byte(s[start:end+1]), &p); err != nil {
		return Proposal{}, &Error{Kind: KindParse, Provider: "proposal", Message: "invalid JSON: " + err.Error(), Err: err}
	}
	if p.Action == "" {
		return Proposal{}, &Error{Kind: KindParse, Provider: "proposal", Message: "reply has no action field"}
	}
	return p, nil
}
