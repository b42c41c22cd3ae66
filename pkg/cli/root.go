package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/netlenium/netlenium-go/pkg/cli/internal/output"
	"github.com/netlenium/netlenium-go/pkg/cliconfig"
	"github.com/netlenium/netlenium-go/pkg/logging"
	"github.com/netlenium/netlenium-go/pkg/netlenium"
	"github.com/netlenium/netlenium-go/pkg/netlenium/transport"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions holds persistent flag values and the configuration resolved
// from them before a subcommand runs.
type rootOptions struct {
	endpoint   string
	secret     string
	secretFile string
	timeout    int
	method     string
	logLevel   string
	logFormat  string
	jsonOutput bool

	cfg *cliconfig.CLIConfig
	log *slog.Logger
}

// NewRootCmd builds the netlenium command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "netlenium",
		Short: "netlenium is a command-line client for the Netlenium automation server",
		Long: `netlenium talks to a Netlenium browser-automation server over HTTP.
It can list active automation sessions and dispatch raw commands.

Configuration can be provided via flags, environment variables (NETLENIUM_*),
or a configuration file. By default, netlenium looks for .netleniumrc.yaml in
the current directory and config.yaml in ~/.config/netlenium/.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.endpoint, "endpoint", cliconfig.DefaultEndpoint, "Netlenium server base URL")
	pf.StringVar(&opts.secret, "secret", "", "Shared secret sent as the auth parameter")
	pf.StringVar(&opts.secretFile, "secret-file", "", "Read the shared secret from a file")
	pf.IntVar(&opts.timeout, "timeout", cliconfig.DefaultTimeout, "Request timeout in seconds")
	pf.StringVar(&opts.method, "method", cliconfig.DefaultMethod, "HTTP method used for commands (GET or POST)")
	pf.StringVar(&opts.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")

	rootCmd.AddCommand(
		newSessionsCmd(opts),
		newSendCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}

// Execute runs the CLI with os.Args. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, FormatError(err))
		os.Exit(1)
	}
}

// resolve merges config files, environment and explicitly set flags.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	changed := func(name, key string) bool {
		if cmd.Flags().Changed(name) {
			flags.SetFields[key] = true
			return true
		}
		return false
	}
	if changed("endpoint", "endpoint") {
		flags.Endpoint = o.endpoint
	}
	if changed("secret", "secret") {
		flags.Secret = o.secret
	}
	if changed("secret-file", "secretFile") {
		flags.SecretFile = o.secretFile
	}
	if changed("timeout", "timeout") {
		flags.Timeout = o.timeout
	}
	if changed("method", "method") {
		flags.Method = o.method
	}
	if changed("log-level", "logLevel") {
		flags.LogLevel = o.logLevel
	}
	if changed("log-format", "logFormat") {
		flags.LogFormat = o.logFormat
	}
	if changed("json", "json") {
		flags.JSON = o.jsonOutput
	}
	cliconfig.MergeConfig(cfg, flags, cliconfig.SourceFlag)

	if err := cliconfig.ResolveSecret(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if sendsSecretInClear(cfg) {
		output.Warn(cmd.ErrOrStderr(), "the shared secret is sent unencrypted to %s; use https for remote servers", cfg.Endpoint)
	}

	o.cfg = cfg
	o.log = logging.FromStrings(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	o.log.Debug("configuration resolved", "endpoint", cfg.Endpoint, "endpointSource", cfg.Sources["endpoint"], "auth", cfg.Secret != "")
	return nil
}

// sendsSecretInClear reports whether a secret would travel over plain http
// to a host other than the local machine.
func sendsSecretInClear(cfg *cliconfig.CLIConfig) bool {
	if cfg.Secret == "" {
		return false
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return false
	}
	ip := net.ParseIP(host)
	return ip == nil || !ip.IsLoopback()
}

// client builds a Netlenium client from the resolved configuration.
func (o *rootOptions) client() *netlenium.Client {
	tr := transport.NewHTTP(
		transport.WithTimeout(time.Duration(o.cfg.Timeout)*time.Second),
		transport.WithMethod(o.cfg.Method),
		transport.WithUserAgent("netlenium-cli/"+Version),
		transport.WithLogger(logging.Component(o.log, "transport")),
	)
	return netlenium.New(o.cfg.Endpoint,
		netlenium.WithSecret(o.cfg.Secret),
		netlenium.WithTransport(tr),
		netlenium.WithLogger(logging.Component(o.log, "client")),
	)
}

// printResult writes data as JSON when --json is active, otherwise calls textFn.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. textFn is called only in text mode.
func (o *rootOptions) printResult(w io.Writer, data any, textFn func() error) error {
	if o.cfg != nil && o.cfg.JSON {
		return writeJSON(w, data)
	}
	return textFn()
}
