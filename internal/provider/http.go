package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// doJSON performs one request against a provider API and returns the body.
// Non-2xx responses come back as a classified *Error with a trimmed excerpt
// of the upstream body.
func doJSON(ctx context.Context, httpc *http.Client, name, method, url string, headers map[string]string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: KindParse, Provider: name, Message: "marshal request", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Provider: name, Message: "build request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Provider: name, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Provider: name, Status: resp.StatusCode, Message: "read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: statusKind(resp.StatusCode), Provider: name,
			Status: resp.StatusCode, Message: excerpt(raw)}
	}
	return raw, nil
}

// excerpt truncates an upstream error body to something loggable.
func excerpt(raw []byte) string {
	const limit = 300
	s := string(raw)
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// verifyFromErr turns the outcome of a probe call into a VerifyResult.
func verifyFromErr(err error) (VerifyResult, error) {
	if err == nil {
		return VerifyResult{OK: true}, nil
	}
	if pe, ok := err.(*Error); ok {
		return VerifyResult{OK: false, Status: pe.Status, Detail: pe.Message}, err
	}
	return VerifyResult{OK: false, Detail: err.Error()}, err
}
