// Package provider wraps the chat-completion APIs an LLM seat can be driven
// by. Every provider is reduced to the same two calls: Complete a prompt pair
// and Verify the configured credentials.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	completeTimeout = 30 * time.Second
	verifyTimeout   = 6 * time.Second
	maxTokens       = 1024
)

// Config selects a provider and model for one seat or one verification call.
// An empty APIKey falls back to the provider's conventional environment
// variable.
type Config struct {
	Provider string `json:"provider"` // openai | anthropic | gemini | ollama
	Model    string `json:"model"`
	APIKey   string `json:"apiKey,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
}

// VerifyResult reports whether a credential check passed and what the
// upstream said.
type VerifyResult struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Client is a configured connection to one provider.
type Client interface {
	// Complete sends a system/user prompt pair and returns the raw text reply.
	Complete(ctx context.Context, system, user string) (string, error)
	// Verify performs a cheap authenticated call to check the credentials.
	Verify(ctx context.Context) (VerifyResult, error)
}

var envKeys = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// New builds a client for the configured provider. Ollama needs no key; the
// others resolve a missing key from the environment and fail without one.
func New(cfg Config) (Client, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	httpc := &http.Client{Timeout: completeTimeout}

	if name != "ollama" {
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(envKeys[name])
		}
		if cfg.APIKey == "" {
			return nil, &Error{Kind: KindCredential, Provider: name,
				Message: fmt.Sprintf("no API key configured (set %s or pass apiKey)", envKeys[name])}
		}
	}

	switch name {
	case "openai":
		return &openaiClient{cfg: cfg, http: httpc}, nil
	case "anthropic":
		return &anthropicClient{cfg: cfg, http: httpc}, nil
	case "gemini":
		return &geminiClient{cfg: cfg, http: httpc}, nil
	case "ollama":
		return &ollamaClient{cfg: cfg, http: httpc}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Verify is the stateless form used by the credential-check endpoint.
func Verify(ctx context.Context, cfg Config) (VerifyResult, error) {
	c, err := New(cfg)
	if err != nil {
		return VerifyResult{OK: false, Detail: err.Error()}, err
	}
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	return c.Verify(ctx)
}
