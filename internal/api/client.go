// Package api is the HTTP client for the portfolio API. It issues exactly one
// request per call, attaches the session token, decodes JSON and normalizes
// every failure into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itson-folio/folio/pkg/version"
)

// DefaultBaseURL is the production deployment of the portfolio API.
const DefaultBaseURL = "https://portfolio-api-three-black.vercel.app/api/v1"

// Header names.
const (
	HeaderAuthToken = "auth-token"
	HeaderRequestID = "X-Request-ID"
)

// TokenSource supplies the current session token. session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// RequestOptions configures a single Request call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is JSON-encoded when non-nil.
	Body any
	// NoAuth suppresses the auth-token header.
	NoAuth bool
}

// Client talks to the portfolio API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for baseURL. An empty baseURL uses DefaultBaseURL.
// tokens may be nil, in which case requests are never authenticated.
// The default http.Client has no timeout; callers bound requests via ctx.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// @MX:ANCHOR: [AUTO] Request is the only place that performs network I/O for the client
// @MX:REASON: every endpoint helper and controller reaches the API through it
// Request performs one HTTP call and returns the decoded JSON body, or nil
// when the response is not JSON. Failures are always *Error.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request body: %v", err), Err: err}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderRequestID, requestID)
	if !opts.NoAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(HeaderAuthToken, token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	data, err := decodeJSON(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fields map[string]any
		if data != nil {
			_ = json.Unmarshal(data, &fields)
		}
		return nil, statusError(resp.StatusCode, fields)
	}
	return data, nil
}

// decodeJSON reads the body when the response declares a JSON content type.
// A JSON-typed body that fails to parse is an error, like any other failure.
func decodeJSON(resp *http.Response) (json.RawMessage, error) {
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	if !json.Valid(raw) {
		err := fmt.Errorf("invalid JSON in %d response", resp.StatusCode)
		return nil, &Error{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	if isJSONNull(raw) {
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

func isJSONNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
