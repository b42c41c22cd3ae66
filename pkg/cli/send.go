package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SendOutput is the JSON form of a send result.
type SendOutput struct {
	Command  string `json:"command"`
	Response string `json:"response"`
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <command> [key=value...]",
		Short: "Send a raw command to the server and print its response",
		Long: `Send dispatches a command path such as "admin/active_sessions" with the
given parameters. The shared secret is added automatically.

A failed command is decoded into a Netlenium error and reported on stderr.`,
		Example: `  netlenium send admin/active_sessions
  netlenium send session/navigate session_id=abc url=https://example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := opts.commandContext(cmd.Context())
			defer cancel()

			resp, err := opts.client().Invoke(ctx, args[0], params)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return opts.printResult(w, SendOutput{Command: args[0], Response: resp}, func() error {
				_, err := fmt.Fprintln(w, resp)
				return err
			})
		},
	}
}

// parseParams turns key=value arguments into a parameter map.
// Later duplicates win.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}
