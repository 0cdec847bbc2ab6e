package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/models"
	configRepo "github.com/KirkDiggler/huddle/internal/repositories/server_config"
	"github.com/KirkDiggler/huddle/internal/services/timing"
)

// SupportedLanguages lists the accepted language codes
var SupportedLanguages = []string{"es", "en"}

// Config holds configuration for the settings service
type Config struct {
	Repository configRepo.Repository

	// Defaults applied to servers without stored settings
	DefaultTimezone  string
	DefaultLanguage  string
	DefaultAlertLead int
}

type service struct {
	repo     configRepo.Repository
	defaults models.ServerConfig
}

// New creates a settings service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	return &service{
		repo: cfg.Repository,
		defaults: models.ServerConfig{
			AlertLeadMinutes: cfg.DefaultAlertLead,
			Timezone:         cfg.DefaultTimezone,
			Language:         cfg.DefaultLanguage,
		},
	}, nil
}

func (s *service) defaultsFor(serverID string) *models.ServerConfig {
	cfg := s.defaults
	cfg.ServerID = serverID
	return &cfg
}

// Get implements Service
func (s *service) Get(ctx context.Context, serverID string) *models.ServerConfig {
	cfg, err := s.repo.GetConfig(ctx, &configRepo.GetConfigInput{ServerID: serverID})
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			log.Error().Err(err).Str("server_id", serverID).Msg("failed to load server config, using defaults")
		}
		return s.defaultsFor(serverID)
	}

	// Fill fields left empty by older records
	if cfg.Timezone == "" {
		cfg.Timezone = s.defaults.Timezone
	}
	if cfg.Language == "" {
		cfg.Language = s.defaults.Language
	}
	if cfg.AlertLeadMinutes <= 0 {
		cfg.AlertLeadMinutes = s.defaults.AlertLeadMinutes
	}
	cfg.ServerID = serverID

	return cfg
}

// Put implements Service
func (s *service) Put(ctx context.Context, cfg *models.ServerConfig) error {
	if cfg == nil || cfg.ServerID == "" {
		return &ValidationError{Field: "server", Reason: "server ID is required"}
	}

	if err := s.repo.SaveConfig(ctx, &configRepo.SaveConfigInput{Config: cfg}); err != nil {
		log.Error().Err(err).Str("server_id", cfg.ServerID).Msg("failed to save server config")
		return fmt.Errorf("failed to save server config: %w", err)
	}

	return nil
}

// SetTimezone implements Service
func (s *service) SetTimezone(ctx context.Context, serverID, timezone string) (*models.ServerConfig, error) {
	timezone = strings.TrimSpace(timezone)
	if !timing.ValidTimezone(timezone) {
		return nil, &ValidationError{Field: "timezone", Reason: fmt.Sprintf("%q is not a known IANA timezone", timezone)}
	}

	return s.update(ctx, serverID, func(cfg *models.ServerConfig) {
		cfg.Timezone = timezone
	})
}

// SetLanguage implements Service
func (s *service) SetLanguage(ctx context.Context, serverID, language string) (*models.ServerConfig, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if !isSupportedLanguage(language) {
		return nil, &ValidationError{
			Field:  "language",
			Reason: fmt.Sprintf("must be one of %s", strings.Join(SupportedLanguages, ", ")),
		}
	}

	return s.update(ctx, serverID, func(cfg *models.ServerConfig) {
		cfg.Language = language
	})
}

// SetAlertLead implements Service
func (s *service) SetAlertLead(ctx context.Context, serverID string, minutes int) (*models.ServerConfig, error) {
	if minutes <= 0 {
		return nil, &ValidationError{Field: "alert lead", Reason: "must be a positive number of minutes"}
	}

	return s.update(ctx, serverID, func(cfg *models.ServerConfig) {
		cfg.AlertLeadMinutes = minutes
	})
}

// update performs the read-modify-write of a whole record
func (s *service) update(ctx context.Context, serverID string, apply func(cfg *models.ServerConfig)) (*models.ServerConfig, error) {
	cfg := s.Get(ctx, serverID)
	apply(cfg)

	if err := s.Put(ctx, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("server_id", serverID).
		Str("timezone", cfg.Timezone).
		Str("lang", cfg.Language).
		Int("alert_lead_minutes", cfg.AlertLeadMinutes).
		Msg("server config updated")

	return cfg, nil
}

func isSupportedLanguage(language string) bool {
	for _, supported := range SupportedLanguages {
		if language == supported {
			return true
		}
	}
	return false
}
