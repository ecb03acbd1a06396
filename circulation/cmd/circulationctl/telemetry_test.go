package main

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
)

func Test_OTelFlag_ExportsHandlerTelemetry(t *testing.T) {
	// arrange
	ctx := context.Background()
	a, out, spans, reader, logs := givenAppWithInMemoryTelemetry(t)

	// act
	run(t, a, out, "--otel", "item", "register", "--title", "Parable of the Sower")

	// assert
	require.NotNil(t, a.otel)
	require.NoError(t, a.otel.telemetry.TracerProvider.ForceFlush(ctx))
	require.NoError(t, a.otel.telemetry.LoggerProvider.ForceFlush(ctx))

	spanNames := make([]string, 0)
	for _, span := range spans.GetSpans() {
		spanNames = append(spanNames, span.Name)
	}
	assert.Contains(t, spanNames, shell.SpanNameCommandHandle)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &collected))
	assert.NotEmpty(t, collected.ScopeMetrics)

	families, err := a.registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "prometheus keeps receiving metrics")

	assert.Positive(t, logs.count())
}

func Test_WithoutOTelFlag_NoTelemetryIsStarted(t *testing.T) {
	// arrange
	a, out, spans, _, _ := givenAppWithInMemoryTelemetry(t)

	// act
	run(t, a, out, "item", "register", "--title", "Bloodchild")

	// assert
	assert.Nil(t, a.otel)
	assert.Empty(t, spans.GetSpans())
	assert.Equal(t, a.metrics, a.metricsCollector())
}

func givenAppWithInMemoryTelemetry(t *testing.T) (
	*app,
	*bytes.Buffer,
	*tracetest.InMemoryExporter,
	*sdkmetric.ManualReader,
	*logExporterSpy,
) {
	t.Helper()

	color.NoColor = true
	out := &bytes.Buffer{}
	spans := tracetest.NewInMemoryExporter()
	reader := sdkmetric.NewManualReader()
	logs := &logExporterSpy{}

	a := newApp(out)
	a.newTelemetry = func(ctx context.Context, serviceName, _ string) (*config.Telemetry, error) {
		return config.NewTelemetryWithExporters(ctx, serviceName, spans, reader, logs)
	}
	t.Cleanup(a.close)

	return a, out, spans, reader, logs
}

type logExporterSpy struct {
	mu      sync.Mutex
	records int
}

func (s *logExporterSpy) Export(_ context.Context, records []sdklog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records += len(records)

	return nil
}

func (s *logExporterSpy) Shutdown(context.Context) error   { return nil }
func (s *logExporterSpy) ForceFlush(context.Context) error { return nil }

func (s *logExporterSpy) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.records
}
