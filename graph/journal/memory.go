package journal

import (
	"context"
	"sync"
)

// MemoryJournal is a Journal kept in process memory. It is safe for concurrent use.
type MemoryJournal struct {
	mu      sync.RWMutex
	records MutationRecords
}

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Append assigns consecutive sequence numbers and stores the records.
func (j *MemoryJournal) Append(ctx context.Context, record MutationRecord, additionalRecords ...MutationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, r := range append(MutationRecords{record}, additionalRecords...) {
		r.SequenceNumber = SequenceNumberUint(len(j.records) + 1)
		j.records = append(j.records, r)
	}

	return nil
}

// Query returns copies of the matching records in sequence order.
func (j *MemoryJournal) Query(ctx context.Context, filter Filter) (MutationRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	result := make(MutationRecords, 0)
	for _, r := range j.records {
		if filter.Matches(r) {
			result = append(result, r)
		}
	}

	return result, nil
}

// Len returns the number of stored records.
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.records)
}

var _ Journal = (*MemoryJournal)(nil)
