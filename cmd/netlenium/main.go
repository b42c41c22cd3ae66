// Command netlenium is a command-line client for the Netlenium browser
// automation server.
package main

import "github.com/netlenium/netlenium-go/pkg/cli"

// Build information, set via -ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = buildDate

	cli.Execute()
}
