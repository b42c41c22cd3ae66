package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/netlenium/netlenium-go/pkg/cliconfig"
)

// ConfigOutput is the JSON form of the effective configuration.
// The secret is never printed in clear.
type ConfigOutput struct {
	*cliconfig.CLIConfig
	Secret     string            `json:"secret,omitempty"`
	SecretPath string            `json:"secretPath"`
	Sources    map[string]string `json:"sources"`
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration with source annotations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			w := cmd.OutOrStdout()

			out := ConfigOutput{
				CLIConfig:  cfg,
				Secret:     cliconfig.MaskSecret(cfg.Secret),
				SecretPath: cliconfig.GetSecretFilePath(),
				Sources:    cfg.Sources,
			}
			return opts.printResult(w, out, func() error {
				fmt.Fprintln(w, "Effective Configuration:")
				fmt.Fprintln(w)

				printConfigValue(w, "endpoint", cfg.Endpoint, cfg.Sources["endpoint"])
				if cfg.Secret != "" {
					printConfigValue(w, "secret", cliconfig.MaskSecret(cfg.Secret), cfg.Sources["secret"])
				} else {
					printConfigValue(w, "secret", "(none)", cliconfig.SourceDefault)
				}
				if cfg.SecretFile != "" {
					printConfigValue(w, "secretFile", cfg.SecretFile, cfg.Sources["secretFile"])
				}
				printConfigValue(w, "timeout", fmt.Sprintf("%ds", cfg.Timeout), cfg.Sources["timeout"])
				printConfigValue(w, "method", cfg.Method, cfg.Sources["method"])
				printConfigValue(w, "logLevel", cfg.LogLevel, cfg.Sources["logLevel"])
				printConfigValue(w, "logFormat", cfg.LogFormat, cfg.Sources["logFormat"])

				fmt.Fprintln(w)
				fmt.Fprintln(w, "Sources loaded:")
				if globalPath, err := cliconfig.FindGlobalConfig(); err == nil && globalPath != "" {
					fmt.Fprintf(w, "  • %s (global)\n", globalPath)
				}
				if localPath, err := cliconfig.FindLocalConfig(); err == nil && localPath != "" {
					fmt.Fprintf(w, "  • %s (local)\n", localPath)
				}
				fmt.Fprintf(w, "  • %s (secret file)\n", out.SecretPath)
				return nil
			})
		},
	}
}

// printConfigValue prints a config value with source annotation.
func printConfigValue(w io.Writer, name string, value interface{}, source string) {
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Fprintf(w, "  %-12s %v%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	case cliconfig.SourceFile:
		return "  (secret file)"
	default:
		return ""
	}
}
