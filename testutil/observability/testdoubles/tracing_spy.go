package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// SpanSpy is a span captured by TracingSpy.
type SpanSpy struct {
	Name       string
	Status     string
	Finished   bool
	Attributes map[string]string

	mu *sync.Mutex
}

func (s *SpanSpy) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = status
}

func (s *SpanSpy) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attributes[key] = value
}

// TracingSpy captures started and finished spans.
type TracingSpy struct {
	mu    sync.Mutex
	spans []*SpanSpy
}

// NewTracingSpy creates an empty TracingSpy.
func NewTracingSpy() *TracingSpy {
	return &TracingSpy{}
}

func (t *TracingSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, rentalstore.SpanContext) {
	t.mu.Lock()
	defer t.mu.Unlock()

	span := &SpanSpy{Name: name, Attributes: make(map[string]string), mu: &t.mu}
	maps.Copy(span.Attributes, attrs)
	t.spans = append(t.spans, span)

	return ctx, span
}

func (t *TracingSpy) FinishSpan(spanCtx rentalstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanSpy)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	span.Status = status
	span.Finished = true
	maps.Copy(span.Attributes, attrs)
}

// Spans returns copies of all captured spans in start order.
func (t *TracingSpy) Spans() []SpanSpy {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := make([]SpanSpy, 0, len(t.spans))
	for _, s := range t.spans {
		spans = append(spans, SpanSpy{Name: s.Name, Status: s.Status, Finished: s.Finished, Attributes: maps.Clone(s.Attributes)})
	}

	return spans
}

var _ rentalstore.TracingCollector = (*TracingSpy)(nil)
