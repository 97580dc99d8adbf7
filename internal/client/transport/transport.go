// Package transport executes authenticated HTTP requests against the Monaco
// Vault backend and normalizes transport failures.
//
// # Overview
//
// The package provides:
//  1. A Client with verb helpers (Get/Post/Put/Delete) that attach the
//     bearer token from a TokenSource, tag every request with a request id,
//     and decode the backend's JSON envelope ({success, data, error}).
//  2. An Upload helper for multipart/form-data uploads with a 0-100
//     progress callback.
//  3. Error mapping to *APIError and the sentinels ErrUnauthorized and
//     ErrUnavailable, matched with errors.Is.
//
// Every failed call is logged exactly once at this layer; callers must not
// log transport errors again. The client applies no retries; retry policy
// lives in the cache layer.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/monacovault/vaultctl/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// Validatable is implemented by response models that check their own
// required fields after decoding.
type Validatable interface {
	Validate() error
}

// Client is a thin wrapper over http.Client bound to one base URL.
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	logger        logging.Logger
	onAuthFailure func(reason string)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithAuthFailureHook registers a callback invoked whenever a call fails
// with 401 or an explicit backend redirect signal. The session layer uses
// it to drive its state machine; deduplication happens there.
func WithAuthFailureHook(fn func(reason string)) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// New returns a Client for the given base URL, e.g. "https://vault.local/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  func() string { return "" },
		logger:  logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the uniform JSON wrapper of every backend response.
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Redirect bool            `json:"redirect"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Get issues a GET request and decodes the envelope data into out (which
// may be nil when no payload is expected).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.execute(req, method, path, out)
}

// execute runs the prepared request and handles auth headers, envelope
// decoding, error mapping and the single diagnostic log per failure.
func (c *Client) execute(req *http.Request, method, path string, out any) error {
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := &APIError{Status: 0, Message: err.Error()}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		return apiErr
	}

	var env envelope
	// A non-JSON body is tolerated for error statuses; the status code is
	// authoritative there.
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.errorMessage(), Redirect: env.Redirect}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		c.notifyAuthFailure(apiErr)
		return apiErr
	}

	if envErr != nil {
		apiErr := &APIError{Status: resp.StatusCode, Message: "decode response: " + envErr.Error()}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		return apiErr
	}

	if !env.Success || env.Redirect {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.errorMessage(), Redirect: env.Redirect}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		c.notifyAuthFailure(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		apiErr := &APIError{Status: resp.StatusCode, Message: "decode response data: " + err.Error()}
		c.logFailure(req.Context(), method, path, requestID, apiErr)
		return apiErr
	}
	if v, ok := out.(Validatable); ok {
		if err := v.Validate(); err != nil {
			apiErr := &APIError{Status: resp.StatusCode, Message: "invalid response payload: " + err.Error()}
			c.logFailure(req.Context(), method, path, requestID, apiErr)
			return apiErr
		}
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, method, path, requestID string, apiErr *APIError) {
	c.logger.Error(ctx, "request failed",
		"method", method,
		"path", path,
		"status", apiErr.Status,
		"request_id", requestID,
		"error", apiErr.Message,
	)
}

func (c *Client) notifyAuthFailure(apiErr *APIError) {
	if c.onAuthFailure == nil {
		return
	}
	if apiErr.Status == 401 || apiErr.Redirect {
		c.onAuthFailure(apiErr.Message)
	}
}
