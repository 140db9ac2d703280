// Package api is the single configured HTTP client for the marketplace
// backend. All requests flow through one code path that joins paths against
// the base URL, injects the bearer token at dispatch time, retries
// network/timeout failures once, and maps error responses onto the apierr
// taxonomy. A 401 from any endpoint triggers the registered unauthorized
// handler, which is how the session store learns it has been logged out.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-hireloop-client/internal/apierr"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for a request at dispatch time.
// Reading the token per request (instead of mutating a shared default
// header) means a login or logout between two requests can never leave a
// half-updated client.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	log            *zap.Logger
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUnauthorizedHandler registers the callback fired whenever any response
// comes back 401. The handler runs at most once per response, before the
// error is returned to the caller.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizePath strips the redundant /api segment some call sites carry and
// guarantees a single leading slash. The backend mounts everything at the
// base URL already, so "/api/jobs" and "/jobs" must hit the same resource.
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/api" {
		return "/"
	}
	if strings.HasPrefix(path, "/api/") {
		path = strings.TrimPrefix(path, "/api")
	}
	return path
}

// do executes one JSON request/response cycle. A network or timeout failure
// is retried exactly once; HTTP error statuses are never retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	return c.doRaw(ctx, method, path, payload, "application/json", out)
}

// doRaw is the shared request path underneath do: path normalization, token
// injection, the one-shot retry, 401 handling and error mapping, for any
// pre-encoded body. Multipart uploads come through here.
func (c *Client) doRaw(ctx context.Context, method, path string, payload []byte, contentType string, out any) error {
	endpoint := c.baseURL + normalizePath(path)

	resp, err := c.attempt(ctx, method, endpoint, payload, contentType)
	if err != nil {
		if !retryable(err) || ctx.Err() != nil {
			return apierr.Network("request failed", err)
		}
		c.log.Warn("request failed, retrying once",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err))
		resp, err = c.attempt(ctx, method, endpoint, payload, contentType)
		if err != nil {
			return apierr.Network("request failed after retry", err)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.Network("failed to read response body", err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apierr.FromStatus(resp.StatusCode, errorMessage(data, resp.StatusCode))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte, contentType string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

// retryable reports whether err is a transport-level failure worth one more
// attempt. Anything that reached the server and came back as a status code
// never lands here.
func retryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return !errors.Is(urlErr.Err, context.Canceled)
	}
	return false
}

// errorMessage pulls a human-readable message out of an error body. The
// backend is inconsistent about the field name.
func errorMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(status)
}
