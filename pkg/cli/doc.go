// Package cli provides the command-line interface for netlenium.
//
// The command tree is built with cobra:
//   - sessions: List active automation sessions on the server
//   - send: Dispatch a raw command with key=value parameters
//   - config: Display effective configuration and where each value came from
//   - version: Show netlenium version
//
// Every command accepts the persistent flags --endpoint, --secret,
// --secret-file, --timeout, --method, --log-level, --log-format and --json.
// Values are layered as defaults < global config < local config <
// NETLENIUM_* environment < flags; see package cliconfig.
//
// With --json, stdout carries only the JSON document. Logs and errors go to
// stderr.
package cli
