// Package assist is a thin client for the scoring service's
// conversational assistant: free-text question/answer over a server-held
// session id. The session lives entirely on the server; the console only
// carries the id between calls.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Message is one entry in a session's history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the /chat endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates an assistant client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Ask sends a question. sessionID may be empty to start a new session;
// the returned session id should be carried into the next call.
func (c *Client) Ask(ctx context.Context, question, sessionID string) (answer, session string, err error) {
	payload, err := json.Marshal(map[string]string{
		"question":   question,
		"session_id": sessionID,
	})
	if err != nil {
		return "", "", fmt.Errorf("assist: marshal question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("assist: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var body struct {
		Answer    string `json:"answer"`
		SessionID string `json:"session_id"`
	}
	if err := c.do(req, &body); err != nil {
		return "", "", err
	}
	return body.Answer, body.SessionID, nil
}

// History fetches the stored conversation for a session.
func (c *Client) History(ctx context.Context, sessionID string) ([]Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chat/history/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("assist: %w", err)
	}

	var body struct {
		History []Message `json:"history"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return body.History, nil
}

// Clear erases a session's stored history.
func (c *Client) Clear(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/chat/clear/"+sessionID, nil)
	if err != nil {
		return fmt.Errorf("assist: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("url", req.URL.String()).Msg("assistant request failed")
		return fmt.Errorf("assist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("assist: status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("assist: decode response: %w", err)
	}
	return nil
}
