package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.AssetsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("S3_BUCKET", "logos")
	t.Setenv("CORS_ORIGINS", "https://panel.turnolibre.app")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.AssetsEnabled())
	assert.Equal(t, []string{"https://panel.turnolibre.app"}, cfg.CORSOrigins)
}

func TestDurationAcceptsSeconds(t *testing.T) {
	t.Setenv("SESSION_TTL", "3600")
	assert.Equal(t, time.Hour, Load().SessionTTL)

	t.Setenv("SESSION_TTL", "nonsense")
	assert.Equal(t, 24*time.Hour, Load().SessionTTL)
}
