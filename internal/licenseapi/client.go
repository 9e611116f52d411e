package licenseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"licenseadmin/internal/config"
	"licenseadmin/internal/model"
)

// maxBody caps how much of a response body is read.
const maxBody = 1 << 20

// Client is the HTTP implementation of API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a license API client for cfg.BaseURL.
// The transport records an OpenTelemetry client span per call.
func NewClient(cfg config.LicenseAPIConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("license api base url is required")
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		baseURL: base,
		http: &http.Client{
			Transport: otelhttp.NewTransport(tr),
			Timeout:   timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Validate calls POST /validate.
func (c *Client) Validate(ctx context.Context, req model.ValidateRequest) (*model.ValidateResult, error) {
	var out model.ValidateResult
	if err := c.do(ctx, "validate", http.MethodPost, "/validate", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create calls POST /create with the admin bearer token.
func (c *Client) Create(ctx context.Context, adminToken string, req model.CreateRequest) (*model.CreateResult, error) {
	var out model.CreateResult
	if err := c.do(ctx, "create", http.MethodPost, "/create", adminToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats calls GET /stats with the admin bearer token.
func (c *Client) Stats(ctx context.Context, adminToken string) (*model.Stats, error) {
	var out model.Stats
	if err := c.do(ctx, "stats", http.MethodGet, "/stats", adminToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues one request and decodes a 2xx JSON body into out.
// A nil body sends no payload and no Content-Type.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Err: &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       snippet(bytes.TrimSpace(raw)),
		}}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}
