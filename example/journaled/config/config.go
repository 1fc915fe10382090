package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPostgresDSN = "JOURNALED_POSTGRES_DSN"
	EnvTableName   = "JOURNALED_TABLE_NAME"
	EnvLogLevel    = "JOURNALED_LOG_LEVEL"
	EnvTenant      = "JOURNALED_TENANT"
	EnvIDKey       = "JOURNALED_ID_KEY"

	defaultTableName = "graph_journal"
	defaultTenant    = "demo"
	defaultIDKey     = "uuid"
)

// ErrUnknownLogLevel is returned for log levels slog does not know.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Config holds the settings of the example.
type Config struct {
	PostgresDSN string
	TableName   string
	LogLevel    slog.Level
	Tenant      string
	IDKey       string
}

// UsesPostgres reports whether a Postgres DSN is configured.
func (c Config) UsesPostgres() bool {
	return c.PostgresDSN != ""
}

// Load reads .env from the working directory if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset variables.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		PostgresDSN: getenv(EnvPostgresDSN),
		TableName:   orDefault(getenv(EnvTableName), defaultTableName),
		Tenant:      orDefault(getenv(EnvTenant), defaultTenant),
		IDKey:       orDefault(getenv(EnvIDKey), defaultIDKey),
		LogLevel:    slog.LevelInfo,
	}

	if level := getenv(EnvLogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return Config{}, errors.Join(ErrUnknownLogLevel, err)
		}
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
