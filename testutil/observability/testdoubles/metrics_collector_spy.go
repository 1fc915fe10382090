package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// MetricsCollectorSpy is a graph.ContextualMetricsCollector implementation that captures metrics calls for testing.
// Calls through the context-aware methods are recorded in the same lists, flagged with WithContext.
type MetricsCollectorSpy struct {
	durationRecords []SpyDurationRecord
	counterRecords  []SpyCounterRecord
	valueRecords    []SpyValueRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric      string
	Duration    time.Duration
	Labels      map[string]string
	WithContext bool
}

// SpyCounterRecord represents a recorded counter increment call.
type SpyCounterRecord struct {
	Metric      string
	Labels      map[string]string
	WithContext bool
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric      string
	Value       float64
	Labels      map[string]string
	WithContext bool
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		durationRecords: make([]SpyDurationRecord, 0),
		counterRecords:  make([]SpyCounterRecord, 0),
		valueRecords:    make([]SpyValueRecord, 0),
		recordCalls:     recordCalls,
	}
}

// RecordDuration implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.recordDuration(metric, duration, labels, false)
}

// IncrementCounter implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.incrementCounter(metric, labels, false)
}

// RecordValue implements the MetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.recordValue(metric, value, labels, false)
}

// RecordDurationContext implements the ContextualMetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {

	s.recordDuration(metric, duration, labels, true)
}

// IncrementCounterContext implements the ContextualMetricsCollector interface for testing.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.incrementCounter(metric, labels, true)
}

// RecordValueContext implements the ContextualMetricsCollector interface for testing.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.recordValue(metric, value, labels, true)
}

func (s *MetricsCollectorSpy) recordDuration(metric string, duration time.Duration, labels map[string]string, withContext bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, SpyDurationRecord{
		Metric:      metric,
		Duration:    duration,
		Labels:      maps.Clone(labels),
		WithContext: withContext,
	})
}

func (s *MetricsCollectorSpy) incrementCounter(metric string, labels map[string]string, withContext bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, SpyCounterRecord{
		Metric:      metric,
		Labels:      maps.Clone(labels),
		WithContext: withContext,
	})
}

func (s *MetricsCollectorSpy) recordValue(metric string, value float64, labels map[string]string, withContext bool) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, SpyValueRecord{
		Metric:      metric,
		Value:       value,
		Labels:      maps.Clone(labels),
		WithContext: withContext,
	})
}

// GetDurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyDurationRecord(nil), s.durationRecords...)
}

// GetCounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyCounterRecord(nil), s.counterRecords...)
}

// GetValueRecords returns a copy of all captured value records.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyValueRecord(nil), s.valueRecords...)
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = s.durationRecords[:0]
	s.counterRecords = s.counterRecords[:0]
	s.valueRecords = s.valueRecords[:0]
}

// HasDurationRecord checks if a duration was recorded for metric with all the given labels.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string, labels map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.durationRecords {
		if record.Metric == metric && hasLabels(record.Labels, labels) {
			return true
		}
	}

	return false
}

// CountCounterRecords counts the increments of metric carrying all the given labels.
func (s *MetricsCollectorSpy) CountCounterRecords(metric string, labels map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.counterRecords {
		if record.Metric == metric && hasLabels(record.Labels, labels) {
			count++
		}
	}

	return count
}

func hasLabels(actual, expected map[string]string) bool {
	for k, v := range expected {
		if actual[k] != v {
			return false
		}
	}

	return true
}

// Compile-time check to ensure MetricsCollectorSpy implements ContextualMetricsCollector interface.
var _ graph.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
