package provider

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	anthropicDefaultURL = "https://api.anthropic.com"
	anthropicVersion    = "2023-06-01"
)

type anthropicClient struct {
	cfg  Config
	http *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *anthropicClient) base() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return anthropicDefaultURL
}

func (c *anthropicClient) headers() map[string]string {
	return map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}
}

func (c *anthropicClient) Complete(ctx context.Context, system, user string) (string, error) {
	req := anthropicRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	}
	raw, err := doJSON(ctx, c.http, "anthropic", http.MethodPost, c.base()+"/v1/messages", c.headers(), req)
	if err != nil {
		return "", err
	}
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &Error{Kind: KindParse, Provider: "anthropic", Message: "unmarshal response", Err: err}
	}
	if len(resp.Content) == 0 {
		return "", &Error{Kind: KindParse, Provider: "anthropic", Message: "empty content"}
	}
	return resp.Content[0].Text, nil
}

// Verify sends a one-token message; Anthropic has no unauthenticated list
// endpoint cheap enough to prefer.
func (c *anthropicClient) Verify(ctx context.Context) (VerifyResult, error) {
	req := anthropicRequest{
		Model:     c.cfg.Model,
		MaxTokens: 1,
		Messages:  []anthropicMessage{{Role: "user", Content: "ping"}},
	}
	_, err := doJSON(ctx, c.http, "anthropic", http.MethodPost, c.base()+"/v1/messages", c.headers(), req)
	return verifyFromErr(err)
}
