package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordDuration("commandhandler_handle_duration_seconds", 150*time.Millisecond, map[string]string{"command_type": "IssueLoan"})

	// assert
	histogram, ok := findMetric(t, reader, "commandhandler_handle_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("command_type", "IssueLoan"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounterContext(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	labels := map[string]string{"command_type": "ReturnLoan", "status": "success"}

	// act
	collector.IncrementCounterContext(context.Background(), "commandhandler_handle_calls_total", labels)
	collector.IncrementCounter("commandhandler_handle_calls_total", labels)

	// assert
	sum, ok := findMetric(t, reader, "commandhandler_handle_calls_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	collector := oteladapters.NewMetricsCollector(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))

	// act
	collector.RecordValue("items_available_copies", 2, nil)
	collector.RecordValue("items_available_copies", 1, nil)

	// assert
	gauge, ok := findMetric(t, reader, "items_available_copies").Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 1.0, gauge.DataPoints[0].Value)
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}
