package returnrental

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

const (
	spanNameHandle = "returnrental.handle"

	// HandleDurationMetric tracks the duration of handling one return event.
	HandleDurationMetric = "returnrental_handle_duration_seconds"

	// HandleCallsMetric counts handled return events per outcome.
	HandleCallsMetric = "returnrental_handle_calls_total"

	outcomeSuccess  = "success"
	outcomeFailed   = "failed"
	outcomeError    = "error"
	outcomeCanceled = "canceled"

	reasonInvalidEvent     = "invalid_event"
	reasonNoEligibleRental = "no_eligible_rental"
	reasonStoreFailure     = "store_failure"

	logMsgInvalidEvent     = "return event rejected"
	logMsgAssetNotFound    = "returned asset is unknown"
	logMsgResolved         = "return resolved"
	logMsgNoEligibleRental = "no eligible rental for return"
	logMsgRentalCompleted  = "rental completed"
	logMsgStoreFailure     = "store failure while handling return"

	logAttrError       = "error"
	logAttrUserID      = "user_id"
	logAttrAssetID     = "asset_id"
	logAttrAssetType   = "asset_type"
	logAttrLocationID  = "location_id"
	logAttrRentalID    = "rental_id"
	logAttrRentalCount = "rental_count"
	logAttrFound       = "found"
	logAttrDurationMS  = "duration_ms"
	labelStatus        = "status"
	labelReason        = "reason"
)

func outcomeFor(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return outcomeCanceled
	}

	return outcomeError
}

func (h CommandHandler) startSpan(ctx context.Context) (context.Context, rentalstore.SpanContext) {
	if h.tracingCollector == nil {
		return ctx, nil
	}

	return h.tracingCollector.StartSpan(ctx, spanNameHandle, nil)
}

// finish closes the span and records metrics for one Handle call.
func (h CommandHandler) finish(ctx context.Context, span rentalstore.SpanContext, outcome string, reason string, start time.Time) {
	duration := time.Since(start)

	labels := map[string]string{labelStatus: outcome}
	if reason != "" {
		labels[labelReason] = reason
	}

	if h.tracingCollector != nil && span != nil {
		h.tracingCollector.FinishSpan(span, outcome, labels)
	}

	if h.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := h.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, HandleDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, HandleCallsMetric, labels)
		return
	}

	h.metricsCollector.RecordDuration(HandleDurationMetric, duration, labels)
	h.metricsCollector.IncrementCounter(HandleCallsMetric, labels)
}

func (h CommandHandler) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.DebugContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Debug(msg, args...)
	}
}

func (h CommandHandler) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.InfoContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Info(msg, args...)
	}
}

func (h CommandHandler) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.WarnContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Warn(msg, args...)
	}
}

func (h CommandHandler) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.ErrorContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Error(msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
