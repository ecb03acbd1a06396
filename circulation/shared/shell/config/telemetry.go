package config

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	DefaultOTelEndpoint = "localhost:4317"

	// OTelEnabledKey switches the OpenTelemetry export of traces, metrics and logs on.
	OTelEnabledKey = "otel.enabled"

	// OTelEndpointKey is the OTLP gRPC endpoint of the collector.
	OTelEndpointKey = "otel.endpoint"

	metricExportInterval = 5 * time.Second
)

// OTelEndpoint returns the configured collector endpoint, or the local development one.
func OTelEndpoint(v *viper.Viper) string {
	if endpoint := v.GetString(OTelEndpointKey); endpoint != "" {
		return endpoint
	}

	return DefaultOTelEndpoint
}

// Telemetry holds the OpenTelemetry providers which NewTelemetry installs as globals.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider
}

// NewTelemetry exports traces, metrics and logs to an OTLP gRPC collector without TLS.
// The exporters connect lazily, an unreachable collector only shows up as export errors.
func NewTelemetry(ctx context.Context, serviceName, endpoint string) (*Telemetry, error) {
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(endpoint), otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithEndpoint(endpoint), otlploggrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	return NewTelemetryWithExporters(
		ctx,
		serviceName,
		traceExporter,
		sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricExportInterval)),
		logExporter,
	)
}

// NewTelemetryWithExporters builds the providers on the given exporters and sets them as the
// global tracer, meter and logger providers.
func NewTelemetryWithExporters(
	ctx context.Context,
	serviceName string,
	spanExporter sdktrace.SpanExporter,
	metricReader sdkmetric.Reader,
	logExporter sdklog.Exporter,
) (*Telemetry, error) {

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}

	telemetry := &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(spanExporter),
			sdktrace.WithResource(res),
		),
		MeterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(metricReader),
			sdkmetric.WithResource(res),
		),
		LoggerProvider: sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		),
	}

	otel.SetTracerProvider(telemetry.TracerProvider)
	otel.SetMeterProvider(telemetry.MeterProvider)
	global.SetLoggerProvider(telemetry.LoggerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return telemetry, nil
}

// Shutdown flushes and stops all providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
		t.LoggerProvider.Shutdown(ctx),
	)
}
