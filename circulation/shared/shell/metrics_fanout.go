package shell

import (
	"context"
	"time"
)

// MetricsFanOut forwards every measurement to all collectors, e.g. Prometheus and OpenTelemetry side by side.
type MetricsFanOut struct {
	collectors []MetricsCollector
}

// NewMetricsFanOut skips nil collectors.
func NewMetricsFanOut(collectors ...MetricsCollector) *MetricsFanOut {
	fanOut := &MetricsFanOut{}

	for _, collector := range collectors {
		if collector != nil {
			fanOut.collectors = append(fanOut.collectors, collector)
		}
	}

	return fanOut
}

func (f *MetricsFanOut) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	f.RecordDurationContext(context.Background(), metric, duration, labels)
}

func (f *MetricsFanOut) IncrementCounter(metric string, labels map[string]string) {
	f.IncrementCounterContext(context.Background(), metric, labels)
}

func (f *MetricsFanOut) RecordValue(metric string, value float64, labels map[string]string) {
	f.RecordValueContext(context.Background(), metric, value, labels)
}

func (f *MetricsFanOut) RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	for _, collector := range f.collectors {
		RecordDuration(ctx, collector, metric, duration, labels)
	}
}

func (f *MetricsFanOut) IncrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	for _, collector := range f.collectors {
		IncrementCounter(ctx, collector, metric, labels)
	}
}

func (f *MetricsFanOut) RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string) {
	for _, collector := range f.collectors {
		if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
			contextualCollector.RecordValueContext(ctx, metric, value, labels)
			continue
		}

		collector.RecordValue(metric, value, labels)
	}
}

var _ ContextualMetricsCollector = (*MetricsFanOut)(nil)
