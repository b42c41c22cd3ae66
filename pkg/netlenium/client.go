package netlenium

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/netlenium/netlenium-go/pkg/logging"
	"github.com/netlenium/netlenium-go/pkg/netlenium/transport"
)

const (
	// DefaultEndpoint is the address a local Netlenium server listens on.
	DefaultEndpoint = "http://localhost:6410"

	// AuthParam is the request parameter carrying the shared secret.
	AuthParam = "auth"

	// CommandActiveSessions lists the sessions currently open on the server.
	CommandActiveSessions = "admin/active_sessions"
)

// ErrEmptyCommand is returned when Send is called without a command.
var ErrEmptyCommand = errors.New("command is required")

// Transport performs one command request and returns the response body.
// A failed command must be reported as *transport.RequestError so the body
// can be decoded; any other error is passed through untouched.
type Transport interface {
	Do(ctx context.Context, endpoint, command string, params map[string]string) (string, error)
}

// Client talks to a Netlenium server. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	endpoint  string
	secret    string
	transport Transport
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSecret sets the shared secret sent as the auth parameter.
func WithSecret(secret string) Option {
	return func(c *Client) {
		c.secret = secret
	}
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the server at endpoint. An empty endpoint means
// DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP(transport.WithLogger(logging.Component(c.log, "transport")))
	}
	return c
}

// Endpoint returns the server base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// HasSecret reports whether requests are authenticated.
func (c *Client) HasSecret() bool {
	return c.secret != ""
}

// Send dispatches command with params and returns the raw response body.
// params is never modified; when a secret is configured it is added to a
// copy. Transport errors, including *transport.RequestError, are returned
// unchanged.
func (c *Client) Send(ctx context.Context, command string, params map[string]string) (string, error) {
	if command == "" {
		return "", ErrEmptyCommand
	}

	c.log.Debug("dispatching command", "command", command, "params", paramKeys(params), "auth", c.secret != "")

	return c.transport.Do(ctx, c.endpoint, command, c.buildParams(params))
}

// Invoke is Send with failed commands decoded: a *transport.RequestError
// becomes the *Error decoded from its body.
func (c *Client) Invoke(ctx context.Context, command string, params map[string]string) (string, error) {
	body, err := c.Send(ctx, command, params)
	if err == nil {
		return body, nil
	}

	var reqErr *transport.RequestError
	if errors.As(err, &reqErr) {
		decoded := DecodeError(reqErr.Body)
		c.log.Debug("command failed", "command", command, "status", reqErr.StatusCode, "kind", KindOf(decoded))
		return "", decoded
	}
	return "", err
}

// GetSessions returns the sessions currently active on the server.
func (c *Client) GetSessions(ctx context.Context) ([]Session, error) {
	body, err := c.Invoke(ctx, CommandActiveSessions, nil)
	if err != nil {
		return nil, err
	}
	return DecodeSessions(body)
}

func (c *Client) buildParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	if c.secret != "" {
		out[AuthParam] = c.secret
	}
	return out
}

// paramKeys lists parameter names for logging; values may be sensitive.
func paramKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
