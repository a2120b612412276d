package provider

import (
	"errors"
	"testing"
)

func TestParseProposalPlain(t *testing.T) {
	p, err := ParseProposal(`{"action":"rollDice","reason":"turn start","confidence":0.9}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Action != "rollDice" {
		t.Errorf("expected rollDice, got %s", p.Action)
	}
	if p.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", p.Confidence)
	}
}

func TestParseProposalCodeFence(t *testing.T) {
	raw := "```json\n{\"action\":\"buildTown\",\"payload\":{\"nodeId\":12}}\n```"
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Action != "buildTown" {
		t.Errorf("expected buildTown, got %s", p.Action)
	}
	if p.Payload["nodeId"] != float64(12) {
		t.Errorf("expected nodeId 12, got %v", p.Payload["nodeId"])
	}
}

func TestParseProposalSurroundingProse(t *testing.T) {
	raw := `I will settle near the wheat.

{"action":"buildRoad","payload":{"edgeId":3}}

That should extend my network.`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Action != "buildRoad" {
		t.Errorf("expected buildRoad, got %s", p.Action)
	}
}

func TestParseProposalNoJSON(t *testing.T) {
	_, err := ParseProposal("I pass this turn.")
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindParse {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseProposalMissingAction(t *testing.T) {
	_, err := ParseProposal(`{"payload":{"nodeId":1}}`)
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != KindParse {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestParseProposalInvalidJSON(t *testing.T) {
	_, err := ParseProposal(`{"action": rollDice}`)
	if err == nil {
		t.Fatal("expected error for unquoted value")
	}
}
