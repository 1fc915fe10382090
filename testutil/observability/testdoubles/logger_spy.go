package testdoubles

import (
	"sync"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// LoggerSpy is a graph.Logger implementation that captures log calls for testing.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{records: make([]SpyLogRecord, 0)}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(LevelDebug, msg, args)
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(LevelInfo, msg, args)
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(LevelWarn, msg, args)
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(LevelError, msg, args)
}

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// GetRecords returns a copy of all captured log records.
func (s *LoggerSpy) GetRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// GetRecordCount returns the number of captured log records.
func (s *LoggerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all captured log records.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// HasLog checks if a log with the specified level and message exists.
func (s *LoggerSpy) HasLog(level, message string) bool {
	return s.HasLogWithArg(level, message, "", nil)
}

// HasLogWithArg checks if a log with the specified level and message exists that carries the key/value
// pair in its args. An empty key skips the args check.
func (s *LoggerSpy) HasLogWithArg(level, message, key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level != level || record.Message != message {
			continue
		}

		if key == "" {
			return true
		}

		for i := 0; i+1 < len(record.Args); i += 2 {
			if record.Args[i] == key && record.Args[i+1] == value {
				return true
			}
		}
	}

	return false
}

// Compile-time check to ensure LoggerSpy implements Logger interface.
var _ graph.Logger = (*LoggerSpy)(nil)
