package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// SlogBridgeLogger implements rentalstore.ContextualLogger on the OpenTelemetry slog bridge,
// records carry the trace and span ids of the context.
// Records are also handed to a local slog.Handler when one is given.
type SlogBridgeLogger struct {
	bridge *slog.Logger
	local  *slog.Logger
}

// NewSlogBridgeLogger creates a contextual logger using the global OpenTelemetry LoggerProvider.
// local may be nil.
func NewSlogBridgeLogger(name string, local *slog.Logger) *SlogBridgeLogger {
	return &SlogBridgeLogger{bridge: otelslog.NewLogger(name), local: local}
}

// DebugContext logs a debug message with context.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

func (l *SlogBridgeLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.bridge.Log(ctx, level, msg, args...)

	if l.local != nil {
		l.local.Log(ctx, level, msg, args...)
	}
}

var _ rentalstore.ContextualLogger = (*SlogBridgeLogger)(nil)
