package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/huddle/internal/services/settings Service

import (
	"context"

	"github.com/KirkDiggler/huddle/internal/models"
)

// Service manages per-server settings
type Service interface {
	// Get returns the settings of a server. Missing records and store
	// failures both yield the system defaults.
	Get(ctx context.Context, serverID string) *models.ServerConfig

	// Put replaces the settings of a server
	Put(ctx context.Context, cfg *models.ServerConfig) error

	// SetTimezone validates and stores the timezone of a server
	SetTimezone(ctx context.Context, serverID, timezone string) (*models.ServerConfig, error)

	// SetLanguage validates and stores the language of a server
	SetLanguage(ctx context.Context, serverID, language string) (*models.ServerConfig, error)

	// SetAlertLead validates and stores the default alert lead of a server
	SetAlertLead(ctx context.Context, serverID string, minutes int) (*models.ServerConfig, error)
}
