package server_config

import "github.com/KirkDiggler/huddle/internal/models"

// GetConfigInput contains parameters for retrieving server settings
type GetConfigInput struct {
	ServerID string
}

// SaveConfigInput contains parameters for saving server settings
type SaveConfigInput struct {
	Config *models.ServerConfig
}
