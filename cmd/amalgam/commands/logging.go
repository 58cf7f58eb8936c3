// Package commands implements CLI command handlers for amalgam.
package commands

import (
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/amalgam/pkg/config"
)

// buildLogger constructs the slog logger for a command run. The config
// file sets the baseline; --verbose lowers the level to debug and
// --silent raises it to error.
func buildLogger(w io.Writer, cfg config.LoggingConfig, verbose, silent bool) *slog.Logger {
	level := parseLevel(cfg.Level)

	if verbose {
		level = slog.LevelDebug
	}

	if silent {
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
