package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, "queue", cfg.ShipmentSink)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("SHIPMENT_SINK", "log")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, 6543, cfg.PostgresPort)
	assert.Equal(t, "log", cfg.ShipmentSink)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")

	cfg := Load()

	assert.Equal(t, 6379, cfg.RedisPort)
}
