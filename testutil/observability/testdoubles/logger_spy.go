package testdoubles

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// Log levels as recorded by LoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LogRecord is one captured log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any

	// Contextual is set when the call came through a ...Context method.
	Contextual bool
}

// LoggerSpy captures plain and contextual log calls.
type LoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLoggerSpy creates an empty LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record(LevelDebug, msg, args, false) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.record(LevelInfo, msg, args, false) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.record(LevelWarn, msg, args, false) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record(LevelError, msg, args, false) }

func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(LevelDebug, msg, args, ctx != nil)
}

func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(LevelInfo, msg, args, ctx != nil)
}

func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(LevelWarn, msg, args, ctx != nil)
}

func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(LevelError, msg, args, ctx != nil)
}

// Messages returns the messages logged at level in call order.
func (s *LoggerSpy) Messages(level string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []string
	for _, r := range s.records {
		if r.Level == level {
			messages = append(messages, r.Message)
		}
	}

	return messages
}

// HasMessage reports whether msg was logged at level.
func (s *LoggerSpy) HasMessage(level, msg string) bool {
	return slices.Contains(s.Messages(level), msg)
}

// Records returns a copy of all captured calls.
func (s *LoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

func (s *LoggerSpy) record(level, msg string, args []any, contextual bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: args, Contextual: contextual})
}

var (
	_ rentalstore.Logger           = (*LoggerSpy)(nil)
	_ rentalstore.ContextualLogger = (*LoggerSpy)(nil)
)
