package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

const (
	serviceName             = "circulationctl"
	telemetryShutdownTimeout = 5 * time.Second
)

type telemetryFactory func(ctx context.Context, serviceName, endpoint string) (*config.Telemetry, error)

// otelCollectors are the OpenTelemetry adapters handed to the handlers and the postgres engine.
type otelCollectors struct {
	telemetry     *config.Telemetry
	tracing       *oteladapters.TracingCollector
	metrics       *oteladapters.MetricsCollector
	handlerLogger *oteladapters.SlogBridgeLogger
	engineLogger  *oteladapters.OTelLogger
}

func newOTelCollectors(telemetry *config.Telemetry) *otelCollectors {
	return &otelCollectors{
		telemetry:     telemetry,
		tracing:       oteladapters.NewTracingCollector(telemetry.TracerProvider.Tracer(serviceName)),
		metrics:       oteladapters.NewMetricsCollector(telemetry.MeterProvider.Meter(serviceName)),
		handlerLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		engineLogger:  oteladapters.NewOTelLogger(telemetry.LoggerProvider.Logger(serviceName)),
	}
}

// setupTelemetry starts the OTLP export once, if --otel is set.
func (a *app) setupTelemetry(ctx context.Context) error {
	if a.otel != nil || !a.v.GetBool(config.OTelEnabledKey) {
		return nil
	}

	telemetry, err := a.newTelemetry(ctx, serviceName, config.OTelEndpoint(a.v))
	if err != nil {
		return fmt.Errorf("setting up opentelemetry: %w", err)
	}

	a.otel = newOTelCollectors(telemetry)

	return nil
}

func (a *app) shutdownTelemetry() {
	if a.otel == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()

	if err := a.otel.telemetry.Shutdown(ctx); err != nil {
		a.logger().Warn("opentelemetry shutdown", "error", err)
	}
}

// logHandler adds trace and span ids to the console log while telemetry is on.
func (a *app) logHandler(handler slog.Handler) *slog.Logger {
	if a.otel == nil {
		return slog.New(handler)
	}

	return oteladapters.NewSlogBridgeLoggerWithHandler(handler).Logger()
}

func (a *app) metricsCollector() shell.MetricsCollector {
	if a.otel == nil {
		return a.metrics
	}

	return shell.NewMetricsFanOut(a.metrics, a.otel.metrics)
}

func (a *app) observabilityConfig() library.ObservabilityConfig {
	observability := library.ObservabilityConfig{
		MetricsCollector: a.metricsCollector(),
		Logger:           a.logger(),
	}

	if a.otel != nil {
		observability.TracingCollector = a.otel.tracing
		observability.ContextualLogger = a.otel.handlerLogger
	}

	return observability
}

func (a *app) postgresObservabilityOptions() []postgresengine.Option {
	options := []postgresengine.Option{
		postgresengine.WithLogger(a.logger()),
		postgresengine.WithMetrics(a.metricsCollector()),
	}

	if a.otel != nil {
		options = append(options,
			postgresengine.WithTracing(a.otel.tracing),
			postgresengine.WithContextualLogger(a.otel.engineLogger),
		)
	}

	return options
}
