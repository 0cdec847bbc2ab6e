package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/huddle/internal/services/messaging"
)

// DefaultMessagesPerSecond is used when SinkConfig leaves the rate unset
const DefaultMessagesPerSecond = 5

// messageAPI is the subset of *discordgo.Session the sink uses
type messageAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// SinkConfig holds configuration for the Discord sink
type SinkConfig struct {
	Session *discordgo.Session

	// MessagesPerSecond caps outbound REST calls across all sessions
	MessagesPerSecond float64
}

// Sink delivers reminders through the Discord REST API
type Sink struct {
	api     messageAPI
	limiter *rate.Limiter
}

var _ messaging.Sink = (*Sink)(nil)

// NewSink creates a new Discord sink
func NewSink(cfg *SinkConfig) (*Sink, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	return newSink(cfg.Session, cfg.MessagesPerSecond), nil
}

func newSink(api messageAPI, perSecond float64) *Sink {
	if perSecond <= 0 {
		perSecond = DefaultMessagesPerSecond
	}

	return &Sink{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Send implements messaging.Sink
func (s *Sink) Send(ctx context.Context, input *messaging.SendInput) (*messaging.SendOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	content, embeds, components := renderMessage(input.Content)

	msg, err := s.api.ChannelMessageSendComplex(input.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Embeds:          embeds,
		Components:      components,
		AllowedMentions: allowedMentions(input.Content),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", input.ChannelID, mapError(err))
	}

	return &messaging.SendOutput{MessageID: msg.ID}, nil
}

// Edit implements messaging.Sink. Empty text leaves the message text as is.
func (s *Sink) Edit(ctx context.Context, input *messaging.EditInput) error {
	if input == nil || input.ChannelID == "" || input.MessageID == "" {
		return errors.New("channel ID and message ID cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	content, embeds, components := renderMessage(input.Content)

	edit := &discordgo.MessageEdit{
		Channel: input.ChannelID,
		ID:      input.MessageID,
	}
	if content != "" {
		edit.Content = &content
	}
	if embeds != nil {
		edit.Embeds = &embeds
		edit.Components = &components
	}

	if _, err := s.api.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return mapError(err)
	}

	return nil
}

// Delete implements messaging.Sink
func (s *Sink) Delete(ctx context.Context, input *messaging.DeleteInput) error {
	if input == nil || input.ChannelID == "" || input.MessageID == "" {
		return errors.New("channel ID and message ID cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := s.api.ChannelMessageDelete(input.ChannelID, input.MessageID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err)
	}

	return nil
}

// Fetch implements messaging.Sink
func (s *Sink) Fetch(ctx context.Context, input *messaging.FetchInput) *messaging.FetchResult {
	if input == nil || input.ChannelID == "" || input.MessageID == "" {
		return messaging.NotFound()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return messaging.Failed(err)
	}

	msg, err := s.api.ChannelMessage(input.ChannelID, input.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		if errors.Is(mapError(err), messaging.ErrMessageNotFound) {
			return messaging.NotFound()
		}
		return messaging.Failed(err)
	}

	return messaging.Found(msg.ID, msg.Content)
}

// SendDirect implements messaging.Sink
func (s *Sink) SendDirect(ctx context.Context, input *messaging.SendDirectInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("user ID cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	channel, err := s.api.UserChannelCreate(input.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM with %s: %w", input.UserID, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	content, embeds, components := renderMessage(input.Content)

	if _, err := s.api.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     embeds,
		Components: components,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM to %s: %w", input.UserID, err)
	}

	log.Debug().Str("user_id", input.UserID).Msg("Direct message sent")
	return nil
}

// allowedMentions lets a fresh reminder ping its group and nobody else
func allowedMentions(c *messaging.Content) *discordgo.MessageAllowedMentions {
	mentions := &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
	if c != nil && c.Status != nil && c.Text != "" && c.Status.GroupID != "" {
		mentions.Roles = []string{c.Status.GroupID}
	}
	return mentions
}

// mapError translates deleted message and channel errors into
// messaging.ErrMessageNotFound
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %v", messaging.ErrMessageNotFound, err)
		}
	}

	if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", messaging.ErrMessageNotFound, err)
	}

	return err
}
