// internal/adapters/httpapi/client.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

const (
	// DefaultBaseURL is used when no API address is configured
	DefaultBaseURL = "http://localhost:3000/api"

	maxResponseBytes = 10 << 20
)

// Client is the shared transport for every REST gateway. It attaches the
// stored bearer token to each request and normalizes failures into
// *domain.APIError.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	sessions       ports.SessionReader
	onUnauthorized func(context.Context)
	userAgent      string
	logger         *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			clone := *c.httpClient
			clone.Timeout = d
			c.httpClient = &clone
		}
	}
}

// WithUnauthorizedHandler registers fn to run when the server rejects a stored token
func WithUnauthorizedHandler(fn func(context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client rooted at baseURL
func NewClient(baseURL string, sessions ports.SessionReader, logger *slog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		sessions:   sessions,
		userAgent:  "stockdesk",
		logger:     logger.With(slog.String("component", "httpapi")),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes one API call
type request struct {
	method      string
	segments    []string
	query       url.Values
	body        io.Reader
	contentType string
	anonymous   bool
	fallback    string
}

func jsonRequest(method string, payload any, segments ...string) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	return request{
		method:      method,
		segments:    segments,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, nil
}

func (c *Client) endpoint(segments []string, query url.Values) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}

	u := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends req and returns the raw response body of a 2xx reply
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	target := c.endpoint(req.segments, req.query)

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	authenticated := false
	if !req.anonymous && c.sessions != nil {
		session, err := c.sessions.Get(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to read session, sending request without token",
				slog.String("error", err.Error()))
		} else if session.Authenticated() {
			httpReq.Header.Set("Authorization", "Bearer "+session.Token)
			authenticated = true
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.ErrorContext(ctx, "request failed",
			slog.String("method", req.method),
			slog.String("path", httpReq.URL.Path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return nil, &domain.APIError{Fallback: req.fallback, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.APIError{Status: resp.StatusCode, Fallback: req.fallback, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", req.method),
		slog.String("path", httpReq.URL.Path),
		slog.String("request_id", requestID),
		slog.Int("status_code", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{
			Status:   resp.StatusCode,
			Message:  errorMessage(body),
			Fallback: req.fallback,
		}
		if resp.StatusCode == http.StatusUnauthorized && authenticated {
			apiErr.Err = domain.ErrUnauthorized
			if c.onUnauthorized != nil {
				c.onUnauthorized(ctx)
			}
		}
		return nil, apiErr
	}

	return body, nil
}

// errorMessage extracts {message} or {error} from an error body. Validation
// errors sometimes carry message as a list of strings.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		if msg := rawText(raw); msg != "" {
			return msg
		}
	}
	return ""
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	return ""
}

// IsTransportError reports whether err happened before any response arrived
func IsTransportError(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0
}
