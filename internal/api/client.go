// Package api implements the HTTP client for the SkyReserve
// reservation backend. It owns the request plumbing every call shares:
// bearer-token attachment, the split base-path routing quirk of the
// deployed backend, the fixed request timeout, and the global
// authorization-denied hook that keeps local session state consistent
// with server-side invalidation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request. There is no per-call
// cancellation beyond the caller's context.
const DefaultTimeout = 10 * time.Second

// Client talks to the reservation backend.
//
// Auth endpoints (/auth/...) are served from the host root while
// resource endpoints live under an /api prefix on the same host. That
// split is a deployment quirk of the backend, not client logic, so both
// paths are configurable.
type Client struct {
	baseURL    string
	apiPrefix  string
	httpClient *http.Client

	// tokenFunc supplies the current bearer token, or "" when logged
	// out. Set by the session manager.
	tokenFunc func() string

	// onAuthDenied fires once per 401 response, before the typed error
	// is returned. The session manager registers its forced logout
	// here.
	onAuthDenied func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// avoid the default timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIPrefix overrides the resource-endpoint prefix (default /api).
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) { c.apiPrefix = prefix }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiPrefix: "/api",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenFunc registers the bearer-token supplier.
func (c *Client) SetTokenFunc(fn func() string) { c.tokenFunc = fn }

// SetOnAuthDenied registers the hook fired on any 401 response.
func (c *Client) SetOnAuthDenied(fn func()) { c.onAuthDenied = fn }

// url resolves a logical path to a full URL, applying the auth/resource
// base-path split.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "/auth") {
		return c.baseURL + path
	}
	return c.baseURL + c.apiPrefix + path
}

// errorBody is the backend's error envelope. Both field names have been
// observed in the wild.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs a request and returns the raw response body on success.
// Non-2xx statuses become typed errors; a 401 additionally fires the
// authorization-denied hook.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, WrapError(ErrRequestFailed, "encode request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return nil, WrapError(ErrRequestFailed, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokenFunc != nil {
		if token := c.tokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, WrapError(ErrTimeout, fmt.Sprintf("%s %s timed out", method, path), err)
		}
		return nil, WrapError(ErrRequestFailed, fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(ErrResponseInvalid, "read response body", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onAuthDenied != nil {
			c.onAuthDenied()
		}
		return nil, &APIError{
			Code:    ErrAuthDenied,
			Message: serverMessage(data, "authorization denied"),
			Status:  resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Code:    ErrStatus,
			Message: serverMessage(data, fmt.Sprintf("%s %s failed", method, path)),
			Status:  resp.StatusCode,
		}
	}

	return data, nil
}

// doJSON performs a request and decodes the response into target.
func (c *Client) doJSON(ctx context.Context, method, path string, body, target any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if target == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return WrapError(ErrResponseInvalid, "decode response body", err)
	}
	return nil
}

// serverMessage extracts the backend's error message, falling back to
// the given default.
func serverMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return fallback
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
