package retry

import (
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// Option configures Do using the functional options pattern.
type Option func(*config) error

// WithMaxAttempts sets how often fn is run at most, 1 disables retrying.
func WithMaxAttempts(attempts int) Option {
	return func(c *config) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		c.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the delay before the first retry, later delays double.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *config) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		c.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the random share added to each delay, from 0.0 to 1.0.
func WithJitterFactor(factor float64) Option {
	return func(c *config) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		c.jitterFactor = factor

		return nil
	}
}

// WithRetryable replaces IsTransient as the classifier of retryable errors.
func WithRetryable(retryable func(error) bool) Option {
	return func(c *config) error {
		if retryable == nil {
			return ErrNilClassifier
		}

		c.retryable = retryable

		return nil
	}
}

// WithMetrics counts retries and exhausted operations, labelled with operation.
func WithMetrics(collector rentalstore.MetricsCollector, operation string) Option {
	return func(c *config) error {
		c.metricsCollector = collector
		c.operation = operation

		return nil
	}
}

// Validate reports the first invalid option, so callers can reject a configuration before using it.
func Validate(options ...Option) error {
	var c config
	for _, option := range options {
		if err := option(&c); err != nil {
			return err
		}
	}

	return nil
}
