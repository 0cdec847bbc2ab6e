package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/services/session"
	"github.com/KirkDiggler/huddle/internal/services/settings"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// reply is what a command shows to the member who ran it
type reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

func textReply(format string, args ...any) *reply {
	return &reply{Content: fmt.Sprintf(format, args...)}
}

// DeferEphemeral acknowledges an interaction with a private "thinking" state
func DeferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// EditDeferred replaces a deferred response with the final reply
func EditDeferred(s *discordgo.Session, i *discordgo.InteractionCreate, r *reply) error {
	edit := &discordgo.WebhookEdit{Content: &r.Content}
	if r.Embed != nil {
		embeds := []*discordgo.MessageEmbed{r.Embed}
		edit.Embeds = &embeds
	}

	_, err := s.InteractionResponseEdit(i.Interaction, edit)
	return err
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// userMessage turns a service error into something safe to show a member
func userMessage(err error) string {
	var sessionValidation *session.ValidationError
	var settingsValidation *settings.ValidationError

	switch {
	case errors.As(err, &sessionValidation):
		return fmt.Sprintf("Invalid %s: %s.", sessionValidation.Field, sessionValidation.Reason)
	case errors.As(err, &settingsValidation):
		return fmt.Sprintf("Invalid %s: %s.", settingsValidation.Field, settingsValidation.Reason)
	case errors.Is(err, session.ErrSessionNotFound):
		return "That session does not exist."
	case errors.Is(err, session.ErrNotCreator):
		return "Only the creator of the session can do that."
	case errors.Is(err, session.ErrFollowUpUnavailable):
		return "Follow-ups are not available right now."
	default:
		log.Error().Err(err).Msg("Command failed")
		return "Something went wrong, try again later."
	}
}

// interactionUser returns the member or DM user behind an interaction
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// stringOpt returns a string, role, channel or user option as a string
func (m optionMap) stringOpt(name string) (string, bool) {
	opt, ok := m[name]
	if !ok || opt.Value == nil {
		return "", false
	}

	v, ok := opt.Value.(string)
	return v, ok
}

// intOpt returns an integer option. Discord delivers numbers as float64.
func (m optionMap) intOpt(name string) (int, bool) {
	opt, ok := m[name]
	if !ok || opt.Value == nil {
		return 0, false
	}

	switch v := opt.Value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
