package server_config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/huddle/internal/models"
)

const configKeyPrefix = "config:"

// Config holds configuration for the Redis server config repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed server config repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func configKey(serverID string) string {
	return configKeyPrefix + serverID
}

// GetConfig retrieves a server's settings from Redis
func (r *redisRepository) GetConfig(ctx context.Context, input *GetConfigInput) (*models.ServerConfig, error) {
	if input == nil || input.ServerID == "" {
		return nil, errors.New("input and server ID cannot be empty")
	}

	configJSON, err := r.client.Get(ctx, configKey(input.ServerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	var cfg models.ServerConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes a server's settings to Redis
func (r *redisRepository) SaveConfig(ctx context.Context, input *SaveConfigInput) error {
	if input == nil || input.Config == nil {
		return errors.New("input and config cannot be nil")
	}

	if input.Config.ServerID == "" {
		return errors.New("server ID cannot be empty")
	}

	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal server config: %w", err)
	}

	if err := r.client.Set(ctx, configKey(input.Config.ServerID), configJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save server config: %w", err)
	}

	return nil
}
