// Package config reads the settings of the journaled example from the environment.
//
// Variables may also come from a .env file in the working directory. Without a DSN the
// example keeps its journal in memory.
package config
