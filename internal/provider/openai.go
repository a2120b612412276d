package provider

import (
	"context"
	"encoding/json"
	"net/http"
)

const openaiDefaultURL = "https://api.openai.com/v1"

type openaiClient struct {
	cfg  Config
	http *http.Client
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_completion_tokens,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

func (c *openaiClient) base() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return openaiDefaultURL
}

func (c *openaiClient) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
}

func (c *openaiClient) Complete(ctx context.Context, system, user string) (string, error) {
	req := openaiRequest{
		Model: c.cfg.Model,
		Messages: []openaiMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
	}
	raw, err := doJSON(ctx, c.http, "openai", http.MethodPost, c.base()+"/chat/completions", c.headers(), req)
	if err != nil {
		return "", err
	}
	var resp openaiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &Error{Kind: KindParse, Provider: "openai", Message: "unmarshal response", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindParse, Provider: "openai", Message: "empty choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Verify lists models, the cheapest authenticated call OpenAI offers.
func (c *openaiClient) Verify(ctx context.Context) (VerifyResult, error) {
	_, err := doJSON(ctx, c.http, "openai", http.MethodGet, c.base()+"/models", c.headers(), nil)
	return verifyFromErr(err)
}
