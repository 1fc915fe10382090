package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const (
	// EnvDSN names the environment variable holding the test database DSN.
	EnvDSN = "GRAPH_JOURNAL_POSTGRES_DSN"

	// EnvReplicaDSN names the environment variable holding the DSN of a read replica.
	EnvReplicaDSN = "GRAPH_JOURNAL_POSTGRES_REPLICA_DSN"

	dotEnvFile      = ".env"
	maxParentLevels = 4
)

var loadDotEnvOnce sync.Once

// LoadDotEnv loads the nearest .env file, searching the working directory and its parents.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv() {
	loadDotEnvOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			return
		}

		for range maxParentLevels + 1 {
			candidate := filepath.Join(dir, dotEnvFile)
			if _, statErr := os.Stat(candidate); statErr == nil {
				_ = godotenv.Load(candidate)
				return
			}

			dir = filepath.Dir(dir)
		}
	})
}

// PostgresDSN returns the DSN of the test database and whether one is configured.
func PostgresDSN() (string, bool) {
	LoadDotEnv()

	dsn := os.Getenv(EnvDSN)

	return dsn, dsn != ""
}

// PostgresReplicaDSN returns the DSN of the replica database, falling back to the primary DSN.
func PostgresReplicaDSN() (string, bool) {
	LoadDotEnv()

	if dsn := os.Getenv(EnvReplicaDSN); dsn != "" {
		return dsn, true
	}

	return PostgresDSN()
}
