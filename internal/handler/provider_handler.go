package handler

import (
	"net/http"

	"github.com/openhex/settlers/api/internal/provider"
)

// ProviderHandler serves the stateless credential-check endpoint.
type ProviderHandler struct{}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler() *ProviderHandler { return &ProviderHandler{} }

// VerifyCredentials handles POST /api/v1/providers/verify — issues a cheap
// authenticated probe against the configured provider.
func (h *ProviderHandler) VerifyCredentials(w http.ResponseWriter, r *http.Request) {
	var cfg provider.Config
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return
	}
	if cfg.Provider == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "provider is required")
		return
	}

	result, err := provider.Verify(r.Context(), cfg)
	if err != nil {
		status, kind := errorStatus(err)
		writeJSON(w, status, map[string]any{"result": result, "kind": kind})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
