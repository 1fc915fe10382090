package adapters

import (
	"context"
)

// DBAdapter runs the journal's rendered SQL. Statements arrive fully interpolated, so no arguments are passed.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the row cursor a journal query scans records from.
// *sql.Rows and *sqlx.Rows satisfy it as they are.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult reports how many records an append wrote. sql.Result satisfies it as it is.
type DBResult interface {
	RowsAffected() (int64, error)
}
