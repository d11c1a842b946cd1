package config

import (
	"io"
	"log/slog"
)

// NewLogger creates the text logger of the command line tools.
// Verbose output logs from debug level on, otherwise only warnings and errors are shown.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
