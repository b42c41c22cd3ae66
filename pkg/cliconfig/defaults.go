package cliconfig

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEndpoint is the address of a local Netlenium server.
const DefaultEndpoint = "http://localhost:6410"

// DefaultTimeout is the default request timeout in seconds.
const DefaultTimeout = 30

// DefaultMethod is the default HTTP method for commands.
const DefaultMethod = http.MethodGet

// DefaultLogLevel only surfaces warnings and errors.
const DefaultLogLevel = "warn"

// DefaultLogFormat is human-readable text.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Endpoint:  DefaultEndpoint,
		Timeout:   DefaultTimeout,
		Method:    DefaultMethod,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	for _, key := range []string{"endpoint", "timeout", "method", "logLevel", "logFormat"} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}

// Validate checks the configuration for values the client cannot use.
func (c *CLIConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint %q is not a valid URL: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}
	if c.Timeout < 0 || c.Timeout > 3600 {
		return fmt.Errorf("timeout %d is out of range (0-3600)", c.Timeout)
	}
	switch strings.ToUpper(c.Method) {
	case "", http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("method %q is not supported (GET or POST)", c.Method)
	}
	return nil
}
