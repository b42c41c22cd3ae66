// Package transport performs Netlenium command requests over HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netlenium/netlenium-go/pkg/logging"
)

const (
	// RequestIDHeader carries a per-request correlation ID.
	RequestIDHeader = "X-Request-Id"

	// DefaultTimeout is the HTTP timeout used when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "netlenium-go"
)

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 16 << 20

// ErrResponseTooLarge is returned when a response body exceeds the
// configured maximum size.
var ErrResponseTooLarge = errors.New("response too large")

// RequestError is returned when the server answers a command with a
// non-success status. Body holds the raw, unparsed response payload.
type RequestError struct {
	StatusCode int
	Command    string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("command %s failed with status %d", e.Command, e.StatusCode)
}

// HTTP sends commands as HTTP requests to {endpoint}/{command}.
type HTTP struct {
	httpClient  *http.Client
	method      string
	userAgent   string
	maxBodySize int64
	log         *slog.Logger
}

// Option configures an HTTP transport.
type Option func(*HTTP)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(t *HTTP) {
		t.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTP) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithMethod selects how parameters are sent: GET puts them in the query
// string, POST sends them as a urlencoded form.
func WithMethod(method string) Option {
	return func(t *HTTP) {
		t.method = strings.ToUpper(method)
	}
}

// WithMaxBodySize sets the largest response body accepted, in bytes.
func WithMaxBodySize(n int64) Option {
	return func(t *HTTP) {
		if n > 0 {
			t.maxBodySize = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *HTTP) {
		t.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *slog.Logger) Option {
	return func(t *HTTP) {
		if log != nil {
			t.log = log
		}
	}
}

// NewHTTP creates an HTTP transport.
func NewHTTP(opts ...Option) *HTTP {
	t := &HTTP{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		method:      http.MethodGet,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		log:         logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Method returns the HTTP method used for commands.
func (t *HTTP) Method() string {
	return t.method
}

// Do sends command with params to endpoint and returns the response body.
// A non-2xx answer is returned as *RequestError carrying the body; network
// failures are wrapped and returned as-is.
func (t *HTTP) Do(ctx context.Context, endpoint, command string, params map[string]string) (string, error) {
	req, err := t.newRequest(ctx, endpoint, command, params)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Debug("command request failed", "command", command, "requestId", requestID, "error", err)
		return "", fmt.Errorf("cannot connect to netlenium at %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > t.maxBodySize {
		return "", fmt.Errorf("%s returned more than %d bytes: %w", command, t.maxBodySize, ErrResponseTooLarge)
	}

	t.log.Debug("command response",
		"command", command,
		"requestId", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{
			StatusCode: resp.StatusCode,
			Command:    command,
			Body:       string(body),
		}
	}
	return string(body), nil
}

func (t *HTTP) newRequest(ctx context.Context, endpoint, command string, params map[string]string) (*http.Request, error) {
	target := CommandURL(endpoint, command)

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}

	var req *http.Request
	var err error
	switch t.method {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case http.MethodGet, "":
		if len(values) > 0 {
			target += "?" + values.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported method %q", t.method)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	return req, nil
}

// CommandURL joins an endpoint and a command into the request URL.
func CommandURL(endpoint, command string) string {
	return strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(command, "/")
}
