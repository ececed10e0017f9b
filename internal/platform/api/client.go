// Package api implements the API-resource adapter family: platforms
// reachable through multi-step authenticated REST calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"eventcast/pkg/logx"
)

const maxResponseBody = 1 << 20 // 1 MiB; provider answers are small JSON.

// Client is a paced JSON client for one provider. Calls share a bearer
// token and a rate limiter so multi-step submissions stay polite.
type Client struct {
	http    *http.Client
	base    string
	token   string
	limiter *rate.Limiter
	log     logx.Logger
}

// NewClient builds a client rooted at base (no trailing slash) with a
// per-call timeout. Two requests per second is gentle enough for every
// provider in use.
func NewClient(base, token string, timeout time.Duration, log logx.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		base:    base,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		log:     log,
	}
}

// PostJSON sends body to base+path and decodes the JSON answer into a
// generic map. Transport and decode problems are errors; provider-level
// rejections ride inside the returned map and are the caller's to
// interpret.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("POST %s: read body: %w", path, err)
	}

	c.log.Debug("provider call",
		logx.String("path", path),
		logx.Int("status", resp.StatusCode),
		logx.Duration("took", time.Since(started)),
	)

	out := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("POST %s: undecodable answer (HTTP %d)", path, resp.StatusCode)
		}
	}
	return out, nil
}

// ErrorDescription pulls a provider's own error wording out of a decoded
// answer. Providers differ in shape; an explicit "error" key is the signal,
// the description is best available text.
func ErrorDescription(resp map[string]any) (string, bool) {
	errVal, ok := resp["error"]
	if !ok || errVal == nil {
		return "", false
	}
	for _, key := range []string{"error_description", "error_detail", "message"} {
		if s, ok := resp[key].(string); ok && s != "" {
			return s, true
		}
	}
	if s, ok := errVal.(string); ok && s != "" {
		return s, true
	}
	return "provider rejected the request", true
}
