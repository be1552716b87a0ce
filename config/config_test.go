package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STARTING_BALANCE", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(cfg.StartingBalance))
	assert.Equal(t, 24*time.Hour, cfg.DailyCooldown)
	assert.Equal(t, time.Hour, cfg.WorkCooldown)
	assert.Equal(t, 2*time.Minute, cfg.RakebackCooldown)
	assert.Equal(t, 3*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 30*time.Second, cfg.RainWindow)
	assert.Equal(t, 10.0, cfg.BigWinMultiplier)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "console", cfg.OTelExporterType)
	assert.Equal(t, "gamblebot", cfg.OTelServiceName)
	assert.Equal(t, 30*time.Second, cfg.OTelExportInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STARTING_BALANCE", "125.5")
	t.Setenv("RAKEBACK_COOLDOWN", "5m")
	t.Setenv("RAIN_WINDOW", "10s")
	t.Setenv("BIG_WIN_MULTIPLIER", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_TYPE", "otlp")
	t.Setenv("OTEL_EXPORT_INTERVAL", "5s")

	cfg, err := load()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("125.5").Equal(cfg.StartingBalance))
	assert.Equal(t, 5*time.Minute, cfg.RakebackCooldown)
	assert.Equal(t, 10*time.Second, cfg.RainWindow)
	assert.Equal(t, 25.0, cfg.BigWinMultiplier)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "otlp", cfg.OTelExporterType)
	assert.Equal(t, 5*time.Second, cfg.OTelExportInterval)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing token outside test", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DISCORD_TOKEN", "")
		t.Setenv("DATABASE_URL", "postgres://localhost")

		_, err := load()
		assert.ErrorContains(t, err, "DISCORD_TOKEN is required")
	})

	t.Run("unknown exporter", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("OTEL_EXPORTER_TYPE", "prometheus")

		_, err := load()
		assert.ErrorContains(t, err, "invalid OTEL_EXPORTER_TYPE")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("WORK_COOLDOWN", "soon")

		_, err := load()
		assert.ErrorContains(t, err, "invalid WORK_COOLDOWN")
	})

	t.Run("non-positive starting balance", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("STARTING_BALANCE", "0")

		_, err := load()
		assert.ErrorContains(t, err, "STARTING_BALANCE must be positive")
	})
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	cfg := NewTestConfig()
	cfg.RainWindow = time.Second
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
}
