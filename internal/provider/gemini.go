package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const geminiDefaultURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiClient struct {
	cfg  Config
	http *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) base() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return geminiDefaultURL
}

func (c *geminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base(), c.cfg.Model, c.cfg.APIKey)
	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
	}
	raw, err := doJSON(ctx, c.http, "gemini", http.MethodPost, url, nil, req)
	if err != nil {
		return "", err
	}
	var resp geminiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &Error{Kind: KindParse, Provider: "gemini", Message: "unmarshal response", Err: err}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Kind: KindParse, Provider: "gemini", Message: "empty candidates"}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Verify fetches the model's metadata, which requires a valid key.
func (c *geminiClient) Verify(ctx context.Context) (VerifyResult, error) {
	url := fmt.Sprintf("%s/models/%s?key=%s", c.base(), c.cfg.Model, c.cfg.APIKey)
	_, err := doJSON(ctx, c.http, "gemini", http.MethodGet, url, nil, nil)
	return verifyFromErr(err)
}
