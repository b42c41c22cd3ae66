package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/netlenium/netlenium-go/pkg/cli/internal/output"
	"github.com/netlenium/netlenium-go/pkg/netlenium"
)

const (
	maxTitleWidth = 40
	maxURLWidth   = 60
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ls"},
		Short:   "List active automation sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.commandContext(cmd.Context())
			defer cancel()

			sessions, err := opts.client().GetSessions(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return opts.printResult(w, sessions, func() error {
				if len(sessions) == 0 {
					fmt.Fprintln(w, "No active sessions")
					return nil
				}
				now := time.Now()
				title := cases.Title(language.English)
				tw := output.Table(w)
				fmt.Fprintln(tw, "ID\tDRIVER\tWINDOW TITLE\tURL\tPROXY\tLAST ACTIVITY")
				for _, s := range sessions {
					proxy := s.Proxy.Address()
					if proxy == "" {
						proxy = "-"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID,
						title.String(string(s.Driver)),
						output.Truncate(s.CurrentWindow.Title, maxTitleWidth),
						output.Truncate(s.CurrentWindow.URL, maxURLWidth),
						proxy,
						formatIdle(s, now),
					)
				}
				return tw.Flush()
			})
		},
	}
}

// formatIdle renders how long ago a session was last active.
func formatIdle(s netlenium.Session, now time.Time) string {
	if s.LastActivity == 0 {
		return "-"
	}
	d := s.Idle(now).Truncate(time.Second)
	if d < time.Second {
		return "just now"
	}
	return d.String() + " ago"
}

// commandContext bounds a whole command by the configured timeout. The
// transport timeout covers a single round trip; zero disables both.
func (o *rootOptions) commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if o.cfg == nil || o.cfg.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(o.cfg.Timeout)*time.Second)
}
