package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"villa-client/config"
	"villa-client/utils"
)

// TokenSource supplies the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the single surface for every remote call the application makes.
// All endpoints live under the configured base URL; authenticated requests
// carry "Authorization: Bearer <token>" from the token source.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
	logger  *utils.Logger
}

// NewClient creates a Client for the configured API base URL.
func NewClient(cfg *config.Config, tokens TokenSource, logger *utils.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		tokens:  tokens,
		logger:  logger,
	}
}

// BaseURL returns the configured API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call performs one JSON round trip. A nil body sends no payload; a non-nil
// out receives the decoded 2xx response. Extra headers (idempotency keys)
// are applied last.
func (c *Client) call(ctx context.Context, method, path string, body, out any, authed bool, headers map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("api: rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any, authed bool) error {
	return c.call(ctx, http.MethodGet, path, nil, out, authed, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any, authed bool) error {
	return c.call(ctx, http.MethodPost, path, body, out, authed, nil)
}

func (c *Client) put(ctx context.Context, path string, body, out any, authed bool) error {
	return c.call(ctx, http.MethodPut, path, body, out, authed, nil)
}

func (c *Client) delete(ctx context.Context, path string, authed bool) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, authed, nil)
}

func queryString(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
