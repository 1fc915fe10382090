package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/graph-strategies-go/testutil/postgresjournal/config"
)

func Test_PostgresDSN_FromEnvironment(t *testing.T) {
	t.Setenv(config.EnvDSN, "postgres://graph@localhost/primary")
	t.Setenv(config.EnvReplicaDSN, "")

	dsn, ok := config.PostgresDSN()
	assert.True(t, ok)
	assert.Equal(t, "postgres://graph@localhost/primary", dsn)

	replicaDSN, ok := config.PostgresReplicaDSN()
	assert.True(t, ok)
	assert.Equal(t, dsn, replicaDSN, "replica falls back to the primary")

	t.Setenv(config.EnvReplicaDSN, "postgres://graph@localhost/replica")
	replicaDSN, ok = config.PostgresReplicaDSN()
	assert.True(t, ok)
	assert.Equal(t, "postgres://graph@localhost/replica", replicaDSN)
}

func Test_PostgresDSN_NotConfigured(t *testing.T) {
	t.Setenv(config.EnvDSN, "")
	t.Setenv(config.EnvReplicaDSN, "")

	_, ok := config.PostgresDSN()
	assert.False(t, ok)
}
