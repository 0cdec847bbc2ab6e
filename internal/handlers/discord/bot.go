package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/models"
	"github.com/KirkDiggler/huddle/internal/services/session"
	"github.com/KirkDiggler/huddle/internal/services/settings"
)

// Bot represents the Discord bot instance
type Bot struct {
	session        *discordgo.Session
	commands       map[string]CommandHandler
	commandIDs     map[string]string // Maps command name to command ID
	sessionService session.Service
	config         *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord connection shared with the messaging sink
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	SessionService  session.Service
	SettingsService settings.Service
}

// NewSession creates an unopened Discord session for a bot token
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	return s, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.SettingsService == nil {
		return nil, errors.New("settings service cannot be nil")
	}

	bot := &Bot{
		session:        cfg.Session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		sessionService: cfg.SessionService,
		config:         cfg,
	}

	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range []CommandHandler{
		NewHuddleCommand(b.config.SessionService),
		NewConfigCommand(b.config.SettingsService),
	} {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	log.Info().Msg("Bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("Failed to delete command")
		} else {
			log.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("Deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("Registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction routes slash commands and RSVP buttons
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Error().Err(err).Str("command", name).Msg("Error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Error().Err(err).Str("custom_id", i.MessageComponentData().CustomID).Msg("Error handling component interaction")
		}
	}
}

// handleComponentInteraction handles the RSVP buttons of a reminder
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	action, sessionID, ok := parseButtonID(customID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "This button is no longer supported.")
	}

	if err := DeferEphemeral(s, i); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return EditDeferred(s, i, b.answer(ctx, newInvocation(i).UserID, action, sessionID))
}

// answer records a member's RSVP button press
func (b *Bot) answer(ctx context.Context, userID, action, sessionID string) *reply {
	var (
		name    string
		updated bool
	)

	switch action {
	case ButtonClear:
		output, err := b.sessionService.ClearAvailability(ctx, &session.ClearAvailabilityInput{
			SessionID: sessionID,
			MemberID:  userID,
		})
		if err != nil {
			return textReply("%s", userMessage(err))
		}
		if !output.Updated {
			return textReply("You had not answered yet.")
		}
		return textReply("Your answer for **%s** was cleared.", output.Session.Name)
	case ButtonReady, ButtonNotReady:
		status := models.AvailabilityReady
		if action == ButtonNotReady {
			status = models.AvailabilityNotReady
		}

		output, err := b.sessionService.SetAvailability(ctx, &session.SetAvailabilityInput{
			SessionID: sessionID,
			MemberID:  userID,
			Status:    status,
		})
		if err != nil {
			return textReply("%s", userMessage(err))
		}
		name, updated = output.Session.Name, output.Updated

		if status == models.AvailabilityReady {
			if !updated {
				return textReply("You are already marked ready for **%s**.", name)
			}
			return textReply("You are ready for **%s**.", name)
		}

		if !updated {
			return textReply("You are already marked not ready for **%s**.", name)
		}
		return textReply("You are marked not ready for **%s**.", name)
	default:
		return textReply("Unknown action.")
	}
}
