package authapi

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

	"github.com/nfrund/portal/internal/domain"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client posts credentials to the authentication backend's login endpoint.
type Client struct {
	loginURL   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the given login URL. A zero timeout means the
// request is bounded only by its context.
func NewClient(loginURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		loginURL:   loginURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ domain.Authenticator = (*Client)(nil)

// errorBody is the subset of a rejection body we understand. The message is
// kept raw so non-string values can still be shown.
type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// Login sends {email, password} as JSON and returns the raw success body.
// Failures are always returned as *Error.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (json.RawMessage, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, networkError(fmt.Errorf("failed to marshal credentials: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(body))
	if err != nil {
		return nil, networkError(fmt.Errorf("failed to create login request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(fmt.Errorf("failed to read login response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: rejectionMessage(raw),
		}
		slog.Debug("Auth backend rejected login", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	if !json.Valid(raw) {
		return nil, networkError(fmt.Errorf("auth backend returned a malformed response body (status %d)", resp.StatusCode))
	}
	return json.RawMessage(raw), nil
}

// rejectionMessage returns the body's "message" field as sent, or the
// fallback when it is missing, blank, zero, false or not a scalar.
// Escaping is left to the templates.
func rejectionMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil || len(eb.Message) == 0 {
		return FallbackMessage
	}
	if msg := scalarText(eb.Message); msg != "" {
		return msg
	}
	return FallbackMessage
}

// scalarText renders a JSON string, number or true as text. Everything else
// yields "".
func scalarText(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch m := v.(type) {
	case string:
		if strings.TrimSpace(m) == "" {
			return ""
		}
		return m
	case json.Number:
		if f, err := m.Float64(); err == nil && f == 0 {
			return ""
		}
		return m.String()
	case bool:
		if m {
			return "true"
		}
	}
	return ""
}
