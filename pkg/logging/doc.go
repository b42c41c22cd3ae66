// Package logging builds the structured loggers used by the netlenium client
// and CLI.
//
// It wraps log/slog so every component is configured the same way:
//
//	log := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	log.Debug("command dispatched", "command", "admin/active_sessions")
//
// Components accept a *slog.Logger through an option. When none is given
// they fall back to Nop, so library users see no output unless they opt in.
package logging
