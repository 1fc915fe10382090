package postgresjournal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/graph-strategies-go/graph/journal/postgresjournal/internal/adapters"
)

type stubRow struct {
	sequenceNumber int64
	operation      string
	elementID      string
	label          string
	propertyKey    string
	value          []byte
	occurredAt     time.Time
}

type stubRows struct {
	rows     []stubRow
	pos      int
	scanErr  error
	iterErr  error
	closeErr error
	closed   bool
}

func (r *stubRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}

	r.pos++

	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}

	if len(dest) != 7 {
		return errors.New("unexpected column count")
	}

	row := r.rows[r.pos-1]
	*dest[0].(*int64) = row.sequenceNumber
	*dest[1].(*string) = row.operation
	*dest[2].(*string) = row.elementID
	*dest[3].(*string) = row.label
	*dest[4].(*string) = row.propertyKey
	*dest[5].(*[]byte) = row.value
	*dest[6].(*time.Time) = row.occurredAt

	return nil
}

func (r *stubRows) Err() error {
	return r.iterErr
}

func (r *stubRows) Close() error {
	r.closed = true
	return r.closeErr
}

type stubResult struct {
	rowsAffected int64
	err          error
}

func (r stubResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.err
}

// stubAdapter records every statement and answers with the configured results.
type stubAdapter struct {
	mu         sync.Mutex
	statements []string
	rows       *stubRows
	queryErr   error
	result     stubResult
	execErr    error
}

func (a *stubAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.statements = append(a.statements, query)

	if a.queryErr != nil {
		return nil, a.queryErr
	}

	if a.rows == nil {
		return &stubRows{}, nil
	}

	return a.rows, nil
}

func (a *stubAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.statements = append(a.statements, query)

	if a.execErr != nil {
		return nil, a.execErr
	}

	return a.result, nil
}

func (a *stubAdapter) lastStatement() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.statements) == 0 {
		return ""
	}

	return a.statements[len(a.statements)-1]
}
