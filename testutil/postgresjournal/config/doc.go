// Package config provides PostgreSQL connections for testing the graph journal.
//
// The DSN is read from the environment, optionally loaded from a .env file in the
// working directory or one of its parents. Tests that need a database call
// PostgresDSN and skip when it is not configured.
package config
