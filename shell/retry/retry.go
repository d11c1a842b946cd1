// Package retry runs an operation again with exponential backoff while its error is classified as transient.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

const (
	defaultMaxAttempts  = 3
	defaultBaseDelay    = 20 * time.Millisecond
	defaultJitterFactor = 0.3

	// AttemptsMetric counts attempts which failed transiently and are tried again.
	AttemptsMetric = "retry_attempts_total"

	// ExhaustedMetric counts operations which still failed after the last attempt.
	ExhaustedMetric = "retry_exhausted_total"

	labelOperation = "operation"
	labelAttempt   = "attempt"
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")

	// ErrNilClassifier is returned when WithRetryable gets a nil function.
	ErrNilClassifier = errors.New("retryable classifier must not be nil")
)

// Func is an operation which may be run more than once, it must be free of side effects.
type Func func(ctx context.Context) error

type config struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	retryable        func(error) bool
	metricsCollector rentalstore.MetricsCollector
	operation        string
}

// Do runs fn until it succeeds, fails permanently or maxAttempts is reached.
//
// Schedule (default): 0 ms, 20 ms, 40 ms, each with up to 30% jitter.
// By default only ErrQueryingFailed is retried, context errors never are.
func Do(ctx context.Context, fn Func, options ...Option) error {
	cfg := config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
		retryable:    IsTransient,
	}

	for _, option := range options {
		if err := option(&cfg); err != nil {
			return err
		}
	}

	var lastErr error

	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			cfg.countRetry(ctx, attempt)

			select {
			case <-time.After(cfg.backoff(attempt)):
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil || !cfg.retryable(lastErr) {
			return lastErr
		}
	}

	cfg.countExhausted(ctx)

	return lastErr
}

// IsTransient reports whether err is a failed read which may succeed when tried again.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return errors.Is(err, rentalstore.ErrQueryingFailed)
}

// backoff returns baseDelay * 2^(attempt-1) plus jitter.
func (c config) backoff(attempt int) time.Duration {
	delay := c.baseDelay * time.Duration(1<<(attempt-1))
	jitter := rand.Float64() * float64(delay) * c.jitterFactor //nolint:gosec // jitter needs no crypto randomness

	return delay + time.Duration(jitter)
}

func (c config) countRetry(ctx context.Context, attempt int) {
	c.increment(ctx, AttemptsMetric, map[string]string{labelOperation: c.operation, labelAttempt: strconv.Itoa(attempt + 1)})
}

func (c config) countExhausted(ctx context.Context) {
	c.increment(ctx, ExhaustedMetric, map[string]string{labelOperation: c.operation})
}

func (c config) increment(ctx context.Context, metric string, labels map[string]string) {
	if c.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := c.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	c.metricsCollector.IncrementCounter(metric, labels)
}
