package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// Log levels as recorded by LoggerSpy and ContextualLoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// operationArg is the log attribute under which graphs and journals name the operation.
const operationArg = "operation"

// ContextualLoggerSpy is a graph.ContextualLogger that captures calls together with their context.
// It is used to verify that graphs and journals log with the context of the operation being run.
type ContextualLoggerSpy struct {
	records     []SpyContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Operation returns the value of the "operation" attribute, empty if the call carried none.
func (r SpyContextualLogRecord) Operation() string {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if r.Args[i] == operationArg {
			op, _ := r.Args[i+1].(string)
			return op
		}
	}

	return ""
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy. Calls are only captured if recordCalls is true.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// Reset clears all captured calls.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// GetRecords returns the captured calls of level in call order.
func (s *ContextualLoggerSpy) GetRecords(level string) []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []SpyContextualLogRecord
	for _, record := range s.records {
		if record.Level == level {
			result = append(result, record)
		}
	}

	return result
}

// GetRecordCount returns the number of captured calls across all levels.
func (s *ContextualLoggerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// HasLog checks if a call with level and message was captured.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	return len(s.matching(level, message, "")) > 0
}

// HasLogForOperation checks if a call with level and message was captured for op.
func (s *ContextualLoggerSpy) HasLogForOperation(level, message string, op graph.Operation) bool {
	return len(s.matching(level, message, string(op))) > 0
}

func (s *ContextualLoggerSpy) matching(level, message, op string) []SpyContextualLogRecord {
	var result []SpyContextualLogRecord
	for _, record := range s.GetRecords(level) {
		if record.Message == message && (op == "" || record.Operation() == op) {
			result = append(result, record)
		}
	}

	return result
}

var _ graph.ContextualLogger = (*ContextualLoggerSpy)(nil)
