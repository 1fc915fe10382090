// Package adapters provide database adapter implementations for the PostgreSQL journal.
//
// The adapters hide the differences between pgxpool.Pool, sql.DB and sqlx.DB behind the
// DBAdapter interface, so the journal builds and runs the same SQL on any of them.
package adapters
