package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter runs journal SQL on a pgxpool.Pool. Appends always go to the primary,
// record queries go to the replica when one is configured.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

func NewPGXAdapter(primary *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: primary}
}

func NewPGXAdapterWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: primary, replica: replica}
}

func (p *PGXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := p.readPool().Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return recordRows{Rows: rows}, nil
}

func (p *PGXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := p.primary.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return appendResult(tag), nil
}

func (p *PGXAdapter) readPool() *pgxpool.Pool {
	if p.replica != nil {
		return p.replica
	}

	return p.primary
}

// recordRows adapts pgx.Rows, whose Close does not report an error, to DBRows.
type recordRows struct {
	pgx.Rows
}

func (r recordRows) Close() error {
	r.Rows.Close()

	// pgx reports close failures through Err.
	return r.Rows.Err()
}

// appendResult adapts the command tag of an append to DBResult.
type appendResult pgconn.CommandTag

func (r appendResult) RowsAffected() (int64, error) {
	return pgconn.CommandTag(r).RowsAffected(), nil
}
