package journal

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// MutationRecords is an alias type for a slice of MutationRecord.
type MutationRecords = []MutationRecord

// MutationRecord is a DTO describing one successful graph mutation.
//
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildMutationRecord
//   - BuildMutationRecordFromJSON
type MutationRecord struct {
	SequenceNumber SequenceNumberUint // assigned by the journal, zero before appending
	Operation      graph.Operation
	ElementID      string
	Label          string
	Key            string // property key, empty for element operations
	ValueJSON      []byte
	OccurredAt     time.Time
}

// BuildMutationRecord is a factory method for MutationRecord.
//
// elementID is rendered with fmt; value is marshaled to JSON, a nil value becomes JSON null.
func BuildMutationRecord(
	op graph.Operation,
	elementID any,
	label string,
	key string,
	value any,
	occurredAt time.Time,
) (MutationRecord, error) {

	valueJSON, err := MarshalValue(value)
	if err != nil {
		return MutationRecord{}, err
	}

	return BuildMutationRecordFromJSON(op, fmt.Sprint(elementID), label, key, valueJSON, occurredAt)
}

// MarshalValue encodes a record value the way BuildMutationRecord does.
// Values JSON can not represent, like NaN, infinities or complex numbers, fail with ErrMarshalingValueFailed.
func MarshalValue(value any) ([]byte, error) {
	valueJSON, err := jsoniter.ConfigFastest.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrMarshalingValueFailed, err)
	}

	return valueJSON, nil
}

// BuildMutationRecordFromJSON is a factory method for MutationRecord with an already encoded value.
// Returns an error if valueJSON is not valid JSON.
func BuildMutationRecordFromJSON(
	op graph.Operation,
	elementID string,
	label string,
	key string,
	valueJSON []byte,
	occurredAt time.Time,
) (MutationRecord, error) {

	if op == "" {
		return MutationRecord{}, ErrEmptyOperation
	}

	if elementID == "" || elementID == "<nil>" {
		return MutationRecord{}, ErrEmptyElementID
	}

	if !jsoniter.ConfigFastest.Valid(valueJSON) {
		return MutationRecord{}, ErrInvalidValueJSON
	}

	return MutationRecord{
		Operation:  op,
		ElementID:  elementID,
		Label:      label,
		Key:        key,
		ValueJSON:  valueJSON,
		OccurredAt: occurredAt,
	}, nil
}

// DecodeValue unmarshals the record's value into target.
func (r MutationRecord) DecodeValue(target any) error {
	return jsoniter.ConfigFastest.Unmarshal(r.ValueJSON, target)
}
