package sciencebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4096

// Client is a throttled, optionally authenticated HTTP client for one catalog.
type Client struct {
	baseURL   string
	tokens    driven.TokenProvider
	timeout   time.Duration
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// NewClient creates a client for the catalog rooted at baseURL.
// requestsPerSecond throttles every call; non-positive disables throttling.
func NewClient(baseURL string, tokens driven.TokenProvider, timeout time.Duration, requestsPerSecond float64) *Client {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokens:    tokens,
		timeout:   timeout,
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// SetTransport replaces the underlying round tripper. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.transport = rt
}

// BaseURL returns the catalog root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// httpClient builds an http.Client carrying the session's bearer token.
func (c *Client) httpClient(ctx context.Context) (*http.Client, error) {
	if c.tokens == nil || !c.tokens.IsAuthenticated() {
		return &http.Client{Timeout: c.timeout, Transport: c.transport}, nil
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	if token == "" {
		return &http.Client{Timeout: c.timeout, Transport: c.transport}, nil
	}

	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		},
	}, nil
}

// wait blocks until the limiter admits one call.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// getJSON performs a throttled GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	hc, err := c.httpClient(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, reqURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w: %w", reqURL, domain.ErrMalformedResponse, err)
	}
	return nil
}

// postJSON performs one throttled POST. The caller owns the response body.
// sent reports whether the request may have reached the server.
func (c *Client) postJSON(ctx context.Context, reqURL string, payload any) (resp *http.Response, sent bool, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("encode request: %w", err)
	}
	if err := c.wait(ctx); err != nil {
		return nil, false, err
	}
	hc, err := c.httpClient(ctx)
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	resp, err = hc.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("post %s: %w", reqURL, err)
	}
	return resp, true, nil
}

func newAPIError(resp *http.Response, reqURL string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
		URL:        reqURL,
	}
}
