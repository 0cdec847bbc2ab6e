package server_config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KirkDiggler/huddle/internal/models"
)

// PostgresConfig holds configuration for the Postgres server config repository
type PostgresConfig struct {
	DB *sqlx.DB
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgres creates a new Postgres-backed server config repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	return &postgresRepository{db: cfg.DB}, nil
}

// GetConfig reads the config row of a server
func (r *postgresRepository) GetConfig(ctx context.Context, input *GetConfigInput) (*models.ServerConfig, error) {
	if input == nil || input.ServerID == "" {
		return nil, errors.New("input and server ID cannot be empty")
	}

	var cfg models.ServerConfig
	query := `SELECT server_id, alert_lead_minutes, timezone, lang FROM config WHERE server_id = $1`
	if err := r.db.GetContext(ctx, &cfg, query, input.ServerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig upserts the config row of a server
func (r *postgresRepository) SaveConfig(ctx context.Context, input *SaveConfigInput) error {
	if input == nil || input.Config == nil {
		return errors.New("input and config cannot be nil")
	}

	if input.Config.ServerID == "" {
		return errors.New("server ID cannot be empty")
	}

	query := `INSERT INTO config (server_id, alert_lead_minutes, timezone, lang)
		VALUES (:server_id, :alert_lead_minutes, :timezone, :lang)
		ON CONFLICT (server_id) DO UPDATE SET
			alert_lead_minutes = EXCLUDED.alert_lead_minutes,
			timezone = EXCLUDED.timezone,
			lang = EXCLUDED.lang`

	if _, err := r.db.NamedExecContext(ctx, query, input.Config); err != nil {
		return fmt.Errorf("failed to save server config: %w", err)
	}

	return nil
}
