// Package config loads the bot's runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/huddle/internal/services/timing"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	DatabaseURL  string `env:"DATABASE_URL"`

	DefaultTimezone         string `env:"DEFAULT_TIMEZONE" envDefault:"Europe/Madrid"`
	DefaultLanguage         string `env:"DEFAULT_LANGUAGE" envDefault:"es"`
	DefaultAlertLeadMinutes int    `env:"DEFAULT_ALERT_LEAD_MINUTES" envDefault:"60"`

	TickIntervalSeconds   int  `env:"TICK_INTERVAL_SECONDS" envDefault:"60"`
	NotifyLeadMinutes     int  `env:"NOTIFY_LEAD_MINUTES" envDefault:"60"`
	EndGraceMinutes       int  `env:"END_GRACE_MINUTES" envDefault:"30"`
	RetentionHours        int  `env:"RETENTION_HOURS" envDefault:"24"`
	SessionTimeoutSeconds int  `env:"SESSION_TIMEOUT_SECONDS" envDefault:"30"`
	FollowUpEnabled       bool `env:"FOLLOW_UP_ENABLED" envDefault:"true"`

	MessagesPerSecond float64 `env:"MESSAGES_PER_SECOND" envDefault:"5"`
	MetricsAddr       string  `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses the environment on top of it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if !timing.ValidTimezone(c.DefaultTimezone) {
		return fmt.Errorf("DEFAULT_TIMEZONE %q cannot be loaded", c.DefaultTimezone)
	}

	positive := []struct {
		name  string
		value int
	}{
		{"DEFAULT_ALERT_LEAD_MINUTES", c.DefaultAlertLeadMinutes},
		{"TICK_INTERVAL_SECONDS", c.TickIntervalSeconds},
		{"NOTIFY_LEAD_MINUTES", c.NotifyLeadMinutes},
		{"END_GRACE_MINUTES", c.EndGraceMinutes},
		{"RETENTION_HOURS", c.RetentionHours},
		{"SESSION_TIMEOUT_SECONDS", c.SessionTimeoutSeconds},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}

	if c.MessagesPerSecond <= 0 {
		return fmt.Errorf("MESSAGES_PER_SECOND must be positive, got %v", c.MessagesPerSecond)
	}

	return nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutSeconds) * time.Second
}
