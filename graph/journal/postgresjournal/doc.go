// Package postgresjournal provides a PostgreSQL implementation of journal.Journal.
//
// Records are stored in a single table, one row per mutation, with the record's value in a jsonb
// column. Sequence numbers are assigned by the database. SQL is built with goqu's postgres dialect
// and executed through one of three database adapters:
//   - pgx.Pool (recommended, optionally with a read replica)
//   - database/sql (sql.DB)
//   - sqlx (sqlx.DB)
//
// Key features:
//   - Atomic multi-record appends, one INSERT per Append call
//   - Filtering by element, operation and sequence number
//   - Optional structured logging, metrics and tracing through the interfaces of package graph
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	j, err := postgresjournal.NewJournalFromPGXPool(pool, postgresjournal.WithTableName("graph_journal"))
//	if err != nil {
//		// handle error
//	}
//
//	if err := j.CreateTable(ctx); err != nil {
//		// handle error
//	}
//
//	journaling, _ := strategy.Journaling(j)
package postgresjournal
