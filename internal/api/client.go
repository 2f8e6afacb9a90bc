package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leish-app/leish-go/internal/logging"
)

// DefaultTimeout bounds every request; past it the call fails with a
// network-kind error like any other transport failure.
const DefaultTimeout = 10 * time.Second

// Config carries the construction-time wiring of a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration // zero means DefaultTimeout
	Tokens  TokenSource
	Auth    AuthClearer
	Logger  logging.Logger

	// Transport is the innermost RoundTripper, a seam for tests.
	// Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client talks JSON to the Leish backend. The middleware chain (request id,
// bearer injection, 401 auth reset) is composed once in New and shared by
// the typed endpoints and the generic verb helpers.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := Chain(base,
		WithRequestID(),
		WithBearerToken(cfg.Tokens),
		WithAuthReset(cfg.Auth, log),
	)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		log:     log,
	}
}

// Get performs a GET and decodes the response body into out (unless nil).
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// do runs one request/response cycle. Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newNetworkError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return newNetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "endpoint", endpoint, "err", err)
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newHTTPError(resp.StatusCode, data)
		c.log.Debug(ctx, "request rejected",
			"method", method, "endpoint", endpoint, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return newNetworkError(err)
		}
	}
	return nil
}
