package journal

import (
	"context"
	"fmt"
	"slices"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// Appender stores mutation records in order.
type Appender interface {
	// Append stores the records atomically and in the given order.
	Append(ctx context.Context, record MutationRecord, additionalRecords ...MutationRecord) error
}

// Journal stores mutation records and reads them back.
type Journal interface {
	Appender

	// Query returns the records matching filter, ordered by sequence number.
	Query(ctx context.Context, filter Filter) (MutationRecords, error)
}

// Filter selects mutation records. The zero value matches every record.
type Filter struct {
	elementIDs               []string
	operations               []graph.Operation
	sequenceNumberHigherThan SequenceNumberUint
}

// ElementIDs returns the element ids the filter is restricted to, empty meaning any.
func (f Filter) ElementIDs() []string {
	return f.elementIDs
}

// Operations returns the operations the filter is restricted to, empty meaning any.
func (f Filter) Operations() []graph.Operation {
	return f.operations
}

// SequenceNumberHigherThan returns the exclusive lower bound of sequence numbers.
func (f Filter) SequenceNumberHigherThan() SequenceNumberUint {
	return f.sequenceNumberHigherThan
}

// Matches reports whether record passes the filter.
func (f Filter) Matches(record MutationRecord) bool {
	if f.sequenceNumberHigherThan > 0 && record.SequenceNumber <= f.sequenceNumberHigherThan {
		return false
	}

	if len(f.elementIDs) > 0 && !slices.Contains(f.elementIDs, record.ElementID) {
		return false
	}

	if len(f.operations) > 0 && !slices.Contains(f.operations, record.Operation) {
		return false
	}

	return true
}

// FilterBuilder builds a Filter step by step.
type FilterBuilder struct {
	filter Filter
}

// BuildFilter starts a FilterBuilder.
func BuildFilter() FilterBuilder {
	return FilterBuilder{}
}

// MatchingAnyRecord returns a Filter without restrictions.
func MatchingAnyRecord() Filter {
	return Filter{}
}

// ForElement adds an element id. Records of any of the added elements match.
func (b FilterBuilder) ForElement(id any) FilterBuilder {
	b.filter.elementIDs = append(slices.Clone(b.filter.elementIDs), fmt.Sprint(id))
	return b
}

// WithOperations adds operations. Records of any of the added operations match.
func (b FilterBuilder) WithOperations(ops ...graph.Operation) FilterBuilder {
	b.filter.operations = append(slices.Clone(b.filter.operations), ops...)
	return b
}

// WithSequenceNumberHigherThan only matches records after the given sequence number.
func (b FilterBuilder) WithSequenceNumberHigherThan(sequenceNumber SequenceNumberUint) FilterBuilder {
	b.filter.sequenceNumberHigherThan = sequenceNumber
	return b
}

// Finalize returns the built Filter.
func (b FilterBuilder) Finalize() Filter {
	return b.filter
}
