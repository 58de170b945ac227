// Package transport implements the single HTTP boundary of the debugger: one
// synchronous JSON POST per conversation turn.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/probekit/chatprobe/internal/core"
)

// Response carries the verbatim outcome of a chat-completions POST. Non-2xx
// statuses are results, not errors; the body is captured either way.
type Response struct {
	Status int
	Body   string
}

// Client posts JSON payloads to a single chat-completions endpoint.
type Client struct {
	url    string
	token  string
	client *http.Client
}

// New creates a client for the given endpoint URL. Every request is bounded
// by timeout and authorized with the bearer token.
func New(url, token string, timeout time.Duration) *Client {
	return &Client{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post sends payload as a JSON body and returns the status code and raw body.
// Each request carries a fresh X-Request-ID for correlation against
// provider-side logs.
func (c *Client) Post(ctx context.Context, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.WrapError(core.ErrTransportFailed, err)
	}

	return &Response{Status: resp.StatusCode, Body: string(raw)}, nil
}
