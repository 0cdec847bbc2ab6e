package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DiscordToken:            "token",
		StoreBackend:            BackendRedis,
		RedisURL:                "redis://localhost:6379/0",
		DefaultTimezone:         "Europe/Madrid",
		DefaultLanguage:         "es",
		DefaultAlertLeadMinutes: 60,
		TickIntervalSeconds:     60,
		NotifyLeadMinutes:       60,
		EndGraceMinutes:         30,
		RetentionHours:          24,
		SessionTimeoutSeconds:   30,
		MessagesPerSecond:       5,
	}
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "token")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, BackendRedis, cfg.StoreBackend)
		assert.Equal(t, "Europe/Madrid", cfg.DefaultTimezone)
		assert.Equal(t, "es", cfg.DefaultLanguage)
		assert.Equal(t, 60, cfg.DefaultAlertLeadMinutes)
		assert.Equal(t, 60, cfg.TickIntervalSeconds)
		assert.Equal(t, 60, cfg.NotifyLeadMinutes)
		assert.Equal(t, 30, cfg.EndGraceMinutes)
		assert.Equal(t, 24, cfg.RetentionHours)
		assert.True(t, cfg.FollowUpEnabled)
		assert.Equal(t, ":9090", cfg.MetricsAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "postgres://localhost/huddle")
		t.Setenv("TICK_INTERVAL_SECONDS", "15")
		t.Setenv("FOLLOW_UP_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, BackendPostgres, cfg.StoreBackend)
		assert.Equal(t, 15*time.Second, cfg.TickInterval())
		assert.False(t, cfg.FollowUpEnabled)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires a token", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown backend", func(c *Config) { c.StoreBackend = "sqlite" }},
		{"postgres without url", func(c *Config) { c.StoreBackend = BackendPostgres; c.DatabaseURL = "" }},
		{"redis without url", func(c *Config) { c.RedisURL = "" }},
		{"bad timezone", func(c *Config) { c.DefaultTimezone = "Mars/Olympus" }},
		{"zero tick interval", func(c *Config) { c.TickIntervalSeconds = 0 }},
		{"negative retention", func(c *Config) { c.RetentionHours = -1 }},
		{"zero send rate", func(c *Config) { c.MessagesPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestDurations(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, time.Minute, cfg.TickInterval())
	assert.Equal(t, 24*time.Hour, cfg.Retention())
	assert.Equal(t, 30*time.Second, cfg.SessionTimeout())
}
