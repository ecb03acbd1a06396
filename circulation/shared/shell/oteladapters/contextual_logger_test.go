package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/oteladapters"
)

func Test_SlogBridgeLogger_AddsTraceCorrelation(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, nil))
	provider := sdktrace.NewTracerProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()

	ctx, span := provider.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	// act
	logger.InfoContext(ctx, "loan issued", "loan_id", "l-1")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"loan issued"`)
	assert.Contains(t, output, `"trace_id":"`+span.SpanContext().TraceID().String()+`"`)
	assert.Contains(t, output, `"span_id":"`+span.SpanContext().SpanID().String()+`"`)
}

func Test_SlogBridgeLogger_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.DebugContext(context.Background(), "debug message")
	logger.WarnContext(context.Background(), "warn message")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "warn message")
	assert.NotContains(t, buf.String(), "trace_id")
}

func Test_SlogBridgeLogger_GlobalProviderDoesNotPanic(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")

	assert.NotPanics(t, func() {
		logger.ErrorContext(context.Background(), "error message", "key", "value")
	})
}

func Test_OTelLogger_DoesNotPanicWithOddArgs(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "message", "key", "value", "dangling")
		logger.ErrorContext(context.Background(), "message", 42, "value")
	})
}
