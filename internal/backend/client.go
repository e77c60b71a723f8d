package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parkflow/internal/observability"
)

const idempotencyHeader = "Idempotency-Key"

// Client talks to the remote parking backend. It is a thin single-shot
// request/response wrapper: no retries, no caching. Mutating calls that
// must not double-apply carry an idempotency key instead.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client for the given base URL, e.g.
// "http://127.0.0.1:8000/api/v1".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// callOptions shape one backend request.
type callOptions struct {
	method         string
	path           string
	query          url.Values
	body           any
	token          string
	idempotencyKey string
}

// call performs one request and decodes the JSON response into out.
// A response body that fails to parse yields an empty result, not an
// error: the backend occasionally returns empty bodies on success.
func (c *Client) call(ctx context.Context, opts callOptions, out any) error {
	endpoint := c.baseURL + opts.path
	if len(opts.query) > 0 {
		endpoint += "?" + opts.query.Encode()
	}

	var reqBody io.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, opts.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.BackendRequests.WithLabelValues(opts.method, opts.path, "error").Inc()
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	observability.BackendRequests.WithLabelValues(opts.method, opts.path, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	observability.BackendLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, raw)
		c.logger.Warn("backend call failed",
			"method", opts.method,
			"path", opts.path,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			// Defensive decode: an unparseable success body is treated
			// as empty rather than failing the whole workflow.
			c.logger.Warn("backend response not JSON", "path", opts.path)
		}
	}

	return nil
}

// callList performs a request whose response is a list. The backend is
// inconsistent about list shapes: some endpoints wrap in {"data": [...]}
// or {"items": [...]}, others return a bare array.
func callList[T any](ctx context.Context, c *Client, opts callOptions) ([]T, error) {
	var raw json.RawMessage
	if err := c.call(ctx, opts, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var env struct {
		Data  []T `json:"data"`
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Data != nil {
			return env.Data, nil
		}
		if env.Items != nil {
			return env.Items, nil
		}
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	return nil, nil
}
