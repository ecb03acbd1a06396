// Package promadapter implements eventstore.MetricsCollector on top of the Prometheus client.
package promadapter

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector creates one vector per metric name on first use. The label names of a
// metric are fixed by its first observation; later observations must use the same keys.
type MetricsCollector struct {
	factory    promauto.Factory
	namespace  string
	buckets    []float64
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

type Option func(*MetricsCollector)

// WithNamespace prefixes every metric name, e.g. "circulation".
func WithNamespace(namespace string) Option {
	return func(c *MetricsCollector) {
		c.namespace = namespace
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *MetricsCollector) {
		c.buckets = buckets
	}
}

// NewMetricsCollector registers the created vectors on registerer, prometheus.DefaultRegisterer if nil.
func NewMetricsCollector(registerer prometheus.Registerer, opts ...Option) *MetricsCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	c := &MetricsCollector{
		factory:    promauto.With(registerer),
		buckets:    prometheus.DefBuckets,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RecordDuration observes the duration in seconds.
func (c *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.histogramFor(metric, labels).With(labels).Observe(duration.Seconds())
}

func (c *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	c.counterFor(metric, labels).With(labels).Inc()
}

// RecordValue sets a gauge.
func (c *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	c.gaugeFor(metric, labels).With(labels).Set(value)
}

func (c *MetricsCollector) histogramFor(metric string, labels map[string]string) *prometheus.HistogramVec {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.histograms[metric]; ok {
		return vec
	}

	vec := c.factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
			Buckets:   c.buckets,
		},
		labelNames(labels),
	)
	c.histograms[metric] = vec

	return vec
}

func (c *MetricsCollector) counterFor(metric string, labels map[string]string) *prometheus.CounterVec {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.counters[metric]; ok {
		return vec
	}

	vec := c.factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
		},
		labelNames(labels),
	)
	c.counters[metric] = vec

	return vec
}

func (c *MetricsCollector) gaugeFor(metric string, labels map[string]string) *prometheus.GaugeVec {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.gauges[metric]; ok {
		return vec
	}

	vec := c.factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
		},
		labelNames(labels),
	)
	c.gauges[metric] = vec

	return vec
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func helpFor(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}
