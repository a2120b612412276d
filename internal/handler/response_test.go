package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openhex/settlers/api/internal/provider"
	"github.com/openhex/settlers/api/internal/registry"
	"github.com/openhex/settlers/api/pkg/settlers"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"name": "test", "value": "42"}
	writeJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["name"] != "test" || result["value"] != "42" {
		t.Errorf("unexpected body: %v", result)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "invalid_request", "missing field")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["error"] != "missing field" {
		t.Errorf("expected error=missing field, got %s", result["error"])
	}
	if result["kind"] != "invalid_request" {
		t.Errorf("expected kind=invalid_request, got %s", result["kind"])
	}
}

func TestDecodeJSON(t *testing.T) {
	body := `{"name":"alice","age":30}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var data struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := decodeJSON(req, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Name != "alice" {
		t.Errorf("expected name=alice, got %s", data.Name)
	}
	if data.Age != 30 {
		t.Errorf("expected age=30, got %d", data.Age)
	}
}

func TestDecodeJSONInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	var data struct{}
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"rule error", &settlers.RuleError{Reason: "not your turn"}, http.StatusBadRequest, "illegal_action"},
		{"unknown action", settlers.ErrUnknownAction, http.StatusBadRequest, "invalid_request"},
		{"game not found", registry.ErrGameNotFound, http.StatusNotFound, "not_found"},
		{"invalid config", registry.ErrInvalidConfig, http.StatusBadRequest, "invalid_request"},
		{"not agent seat", registry.ErrNotAgentSeat, http.StatusConflict, "not_agent_seat"},
		{"provider credential", &provider.Error{Kind: provider.KindCredential, Provider: "openai"}, http.StatusUnauthorized, "provider_credential"},
		{"provider transport", &provider.Error{Kind: provider.KindTransport, Provider: "ollama"}, http.StatusBadGateway, "provider_error"},
		{"unrecognized", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, kind := errorStatus(tc.err)
			if status != tc.status {
				t.Errorf("status: expected %d, got %d", tc.status, status)
			}
			if kind != tc.kind {
				t.Errorf("kind: expected %s, got %s", tc.kind, kind)
			}
		})
	}
}

func TestErrorStatusWrapped(t *testing.T) {
	err := errors.Join(errors.New("while loading"), registry.ErrGameNotFound)
	status, kind := errorStatus(err)
	if status != http.StatusNotFound || kind != "not_found" {
		t.Errorf("wrapped sentinel not detected: got %d %s", status, kind)
	}
}
