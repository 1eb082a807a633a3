package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/actuallystonmai/cineai/internal/domain"
)

// Client talks to the external recommendation engine over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewClient returns a client posting to endpoint. A zero timeout leaves
// outbound calls unbounded.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger.With("component", "engine"),
	}
}

// StatusError is returned when the engine answers with a non-success status.
// Message is empty when the engine did not say why.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("engine returned status %d", e.Status)
	}
	return fmt.Sprintf("engine returned status %d: %s", e.Status, e.Message)
}

func AsStatusError(err error) (*StatusError, bool) {
	var target *StatusError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Recommend posts {"prompt": prompt} to the engine and returns the raw JSON
// body of a successful answer.
func (c *Client) Recommend(ctx context.Context, prompt string) (json.RawMessage, error) {
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(domain.RecommendationRequest{Prompt: prompt}); err != nil {
		return nil, fmt.Errorf("encode engine request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &payload)
	if err != nil {
		return nil, fmt.Errorf("build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read engine response: %w", err)
	}

	c.logger.DebugContext(ctx, "engine call finished",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, domain.ErrMalformedResponse)
	}

	return json.RawMessage(body), nil
}

// errorMessage pulls a human readable reason out of an error body. The engine
// uses "message"; FastAPI itself answers with a string "detail".
func errorMessage(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s, ok := fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
