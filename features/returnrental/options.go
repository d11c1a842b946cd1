package returnrental

import (
	"github.com/AntonStoeckl/rental-return-events/rentalstore"
	"github.com/AntonStoeckl/rental-return-events/shell/retry"
)

// Option defines a functional option for configuring the CommandHandler.
type Option func(*CommandHandler) error

// WithLogger sets the logger for the CommandHandler.
//
// Debug level: resolution details
// Info level: completed returns with duration
// Warn level: invalid events and unresolved returns
// Error level: store failures.
func WithLogger(logger rentalstore.Logger) Option {
	return func(h *CommandHandler) error {
		h.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over the plain Logger.
func WithContextualLogger(logger rentalstore.ContextualLogger) Option {
	return func(h *CommandHandler) error {
		h.contextualLogger = logger
		return nil
	}
}

// WithTracing sets the tracing collector, every Handle call records one span.
func WithTracing(collector rentalstore.TracingCollector) Option {
	return func(h *CommandHandler) error {
		h.tracingCollector = collector
		return nil
	}
}

// WithMetrics sets the metrics collector, which receives handle durations and call counts per outcome.
func WithMetrics(collector rentalstore.MetricsCollector) Option {
	return func(h *CommandHandler) error {
		h.metricsCollector = collector
		return nil
	}
}

// WithResolveRetry retries the read-only resolution on transient read failures.
// Completing the rental is never retried. Without this option resolution runs once.
func WithResolveRetry(options ...retry.Option) Option {
	return func(h *CommandHandler) error {
		if err := retry.Validate(options...); err != nil {
			return err
		}

		h.resolveRetry = append([]retry.Option(nil), options...)

		return nil
	}
}
