// Package logging configures the process-wide slog logger for the
// converters: human-readable text on stderr, level settable from the CLI.
package logging

import (
	"log/slog"
	"os"
)

// Init installs a text handler on stderr as the default logger and returns
// it. When verbose is true the level drops to Debug.
func Init(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
