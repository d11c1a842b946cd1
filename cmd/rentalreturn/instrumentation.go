package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/rental-return-events/features/returnrental"
	"github.com/AntonStoeckl/rental-return-events/rentalstore/oteladapters"
	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
	"github.com/AntonStoeckl/rental-return-events/shell/retry"
)

const (
	instrumentationName = "github.com/AntonStoeckl/rental-return-events"
	resolveOperation    = "resolve_return"
)

// instrumentation bundles the logging and telemetry adapters handed to the store and the handler.
// Without an OTLP endpoint only the plain slog logger is used.
type instrumentation struct {
	logger           *slog.Logger
	providers        *config.ObservabilityProviders
	contextualLogger *oteladapters.SlogBridgeLogger
	tracingCollector *oteladapters.TracingCollector
	metricsCollector *oteladapters.MetricsCollector
}

func newInstrumentation(ctx context.Context, cfg config.Config, logger *slog.Logger) (instrumentation, error) {
	if !cfg.TelemetryEnabled() {
		return instrumentation{logger: logger}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg)
	if err != nil {
		return instrumentation{}, err
	}

	return instrumentation{
		logger:           logger,
		providers:        providers,
		contextualLogger: oteladapters.NewSlogBridgeLogger(instrumentationName, logger),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
	}, nil
}

func (i instrumentation) storeOptions() []sqlengine.Option {
	if i.providers == nil {
		return []sqlengine.Option{sqlengine.WithLogger(i.logger)}
	}

	return []sqlengine.Option{
		sqlengine.WithContextualLogger(i.contextualLogger),
		sqlengine.WithMetrics(i.metricsCollector),
	}
}

func (i instrumentation) handlerOptions(resolveAttempts int) []returnrental.Option {
	if i.providers == nil {
		return []returnrental.Option{
			returnrental.WithLogger(i.logger),
			returnrental.WithResolveRetry(retry.WithMaxAttempts(resolveAttempts)),
		}
	}

	return []returnrental.Option{
		returnrental.WithContextualLogger(i.contextualLogger),
		returnrental.WithTracing(i.tracingCollector),
		returnrental.WithMetrics(i.metricsCollector),
		returnrental.WithResolveRetry(
			retry.WithMaxAttempts(resolveAttempts),
			retry.WithMetrics(i.metricsCollector, resolveOperation),
		),
	}
}

func (i instrumentation) shutdown(logger *slog.Logger) {
	if i.providers == nil {
		return
	}

	logShutdownError(logger, "flushing telemetry failed", i.providers.Shutdown())
}
