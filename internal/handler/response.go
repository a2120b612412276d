package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/provider"
	"github.com/openhex/settlers/api/internal/registry"
	"github.com/openhex/settlers/api/pkg/settlers"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response with an error kind the UI can
// branch on.
func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "kind": kind})
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// errorStatus classifies an engine, registry, or provider failure into an
// HTTP status and an error kind string. Anything unrecognized is a 500.
func errorStatus(err error) (int, string) {
	var re *settlers.RuleError
	var pe *provider.Error
	switch {
	case errors.As(err, &re):
		return http.StatusBadRequest, "illegal_action"
	case errors.Is(err, settlers.ErrUnknownAction):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, registry.ErrGameNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, registry.ErrInvalidConfig):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, registry.ErrNotAgentSeat):
		return http.StatusConflict, "not_agent_seat"
	case errors.As(err, &pe):
		if pe.Kind == provider.KindCredential {
			return http.StatusUnauthorized, "provider_credential"
		}
		return http.StatusBadGateway, "provider_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// respondError maps a failure to a bare error response.
func respondError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	writeError(w, status, kind, err.Error())
}
