package helper

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type SpySpanContext struct {
	Name       string
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[key] = value
}

func (c *SpySpanContext) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *SpySpanContext) Attributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.attributes)
}

// TracingCollectorSpy records started and finished spans. It implements eventstore.TracingCollector.
type TracingCollectorSpy struct {
	started  []*SpySpanContext
	finished []*SpySpanContext
	mu       sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	span := &SpySpanContext{Name: name, attributes: maps.Clone(attrs)}
	if span.attributes == nil {
		span.attributes = make(map[string]string)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, span)

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	span.SetStatus(status)
	for key, val := range attrs {
		span.AddAttribute(key, val)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = append(s.finished, span)
}

// FinishedSpans returns the finished spans in finishing order.
func (s *TracingCollectorSpy) FinishedSpans() []*SpySpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*SpySpanContext(nil), s.finished...)
}
