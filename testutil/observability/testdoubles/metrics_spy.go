package testdoubles

import (
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// MetricRecord is one captured duration or counter increment.
type MetricRecord struct {
	Name     string
	Duration time.Duration
	Labels   map[string]string
}

// MetricsSpy captures durations and counter increments.
// It only implements the plain MetricsCollector, so callers exercise their fallback path.
type MetricsSpy struct {
	mu        sync.Mutex
	durations []MetricRecord
	counters  []MetricRecord
}

// NewMetricsSpy creates an empty MetricsSpy.
func NewMetricsSpy() *MetricsSpy {
	return &MetricsSpy{}
}

func (s *MetricsSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, MetricRecord{Name: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, MetricRecord{Name: metric, Labels: maps.Clone(labels)})
}

// DurationCount returns how often a duration was recorded for metric.
func (s *MetricsSpy) DurationCount(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countNamed(s.durations, metric)
}

// CounterCount returns how often metric was incremented.
func (s *MetricsSpy) CounterCount(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countNamed(s.counters, metric)
}

// LastCounterLabels returns the labels of the latest increment of metric, or nil.
func (s *MetricsSpy) LastCounterLabels(metric string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.counters) - 1; i >= 0; i-- {
		if s.counters[i].Name == metric {
			return s.counters[i].Labels
		}
	}

	return nil
}

func countNamed(records []MetricRecord, name string) int {
	count := 0
	for _, r := range records {
		if r.Name == name {
			count++
		}
	}

	return count
}

var _ rentalstore.MetricsCollector = (*MetricsSpy)(nil)
