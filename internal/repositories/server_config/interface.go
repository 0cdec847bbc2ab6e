package server_config

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/huddle/internal/repositories/server_config Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/huddle/internal/models"
)

// ErrConfigNotFound is returned when a server has no stored settings
var ErrConfigNotFound = errors.New("server config not found")

// Repository defines the interface for per-server settings persistence
type Repository interface {
	// GetConfig retrieves the settings of a server
	GetConfig(ctx context.Context, input *GetConfigInput) (*models.ServerConfig, error)

	// SaveConfig replaces the settings of a server
	SaveConfig(ctx context.Context, input *SaveConfigInput) error
}
