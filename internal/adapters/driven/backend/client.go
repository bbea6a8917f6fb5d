// Package backend provides the HTTP adapter for the document QA server.
// It implements the document, query and auth ports over the server's REST API.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.DocumentBackend = (*Client)(nil)
	_ driven.QueryBackend    = (*Client)(nil)
	_ driven.AuthBackend     = (*Client)(nil)
)

// HeaderRequestID carries a per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the API root (default: http://localhost:8080/api).
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64

	// Token is the bearer token sent on every request when set.
	Token string
}

// ConfigFromSettings maps client settings onto a backend config.
func ConfigFromSettings(s domain.ClientSettings) Config {
	return Config{
		BaseURL:   s.BackendURL,
		Timeout:   s.Timeout,
		RateLimit: s.RateLimit,
		Token:     s.Token,
	}
}

// Client talks to the document QA server.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBackendURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultBackendTimeout
	}

	var hc *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = cfg.Timeout

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: limiter,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do throttles, tags and sends a request.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	id := uuid.NewString()
	req.Header.Set(HeaderRequestID, id)
	logger.Debug("%s %s (request %s)", req.Method, req.URL.Path, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// newJSONRequest builds a request with an optional JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// decode reads a successful response into out, or converts a failure
// into a *domain.BackendError.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorPayload is the server's failure body.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorFromBody extracts the server's error text when present.
func errorFromBody(status int, body []byte) error {
	var payload errorPayload
	if err := sonic.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return &domain.BackendError{StatusCode: status, Message: payload.Error}
		}
		if payload.Message != "" {
			return &domain.BackendError{StatusCode: status, Message: payload.Message}
		}
	}
	return &domain.BackendError{StatusCode: status}
}
