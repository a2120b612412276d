package provider

import (
	"context"
	"encoding/json"
	"net/http"
)

const ollamaDefaultURL = "http://localhost:11434"

// ollamaClient talks to a local Ollama daemon. No credentials involved.
type ollamaClient struct {
	cfg  Config
	http *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
}

func (c *ollamaClient) base() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return ollamaDefaultURL
}

func (c *ollamaClient) Complete(ctx context.Context, system, user string) (string, error) {
	req := ollamaRequest{
		Model: c.cfg.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	raw, err := doJSON(ctx, c.http, "ollama", http.MethodPost, c.base()+"/api/chat", nil, req)
	if err != nil {
		return "", err
	}
	var resp ollamaResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &Error{Kind: KindParse, Provider: "ollama", Message: "unmarshal response", Err: err}
	}
	return resp.Message.Content, nil
}

// Verify checks that the daemon is reachable.
func (c *ollamaClient) Verify(ctx context.Context) (VerifyResult, error) {
	_, err := doJSON(ctx, c.http, "ollama", http.MethodGet, c.base()+"/api/tags", nil, nil)
	return verifyFromErr(err)
}
