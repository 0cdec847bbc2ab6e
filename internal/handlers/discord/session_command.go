package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/huddle/internal/models"
	"github.com/KirkDiggler/huddle/internal/services/render"
	"github.com/KirkDiggler/huddle/internal/services/session"
	"github.com/KirkDiggler/huddle/internal/services/settings"
)

const commandTimeout = 10 * time.Second

// invocation identifies who ran a command and where
type invocation struct {
	GuildID   string
	UserID    string
	ChannelID string
}

func newInvocation(i *discordgo.InteractionCreate) *invocation {
	inv := &invocation{GuildID: i.GuildID, ChannelID: i.ChannelID}
	if user := interactionUser(i); user != nil {
		inv.UserID = user.ID
	}
	return inv
}

func nameOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Session name",
		Required:    true,
	}
}

func scheduleOptions(required bool) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "date",
			Description: "Start in server time, DD-MM-YYYY HH:MM",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "group",
			Description: "Role to remind",
			Required:    required,
		},
		{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Where to post the reminder, defaults to this channel",
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duration",
			Description: "Length in minutes",
		},
	}
}

// HuddleCommand handles the /huddle command
type HuddleCommand struct {
	BaseCommand
	sessionService session.Service
}

// NewHuddleCommand creates a new huddle command handler
func NewHuddleCommand(sessionService session.Service) *HuddleCommand {
	return &HuddleCommand{
		BaseCommand: BaseCommand{
			Name:        "huddle",
			Description: "Schedule sessions and track who is coming",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Schedule a session, replacing one with the same name",
					Options:     append([]*discordgo.ApplicationCommandOption{nameOption()}, scheduleOptions(true)...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Change the schedule or audience of a session",
					Options:     append([]*discordgo.ApplicationCommandOption{nameOption()}, scheduleOptions(false)...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a session",
					Options:     []*discordgo.ApplicationCommandOption{nameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show a session",
					Options:     []*discordgo.ApplicationCommandOption{nameOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the sessions of this server",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "purge",
					Description: "Remove sessions that ended long ago",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "followup",
					Description: "Send the post-session summary again",
					Options:     []*discordgo.ApplicationCommandOption{nameOption()},
				},
			},
		},
		sessionService: sessionService,
	}
}

// Handle processes a Discord interaction for the huddle command
func (c *HuddleCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	if err := DeferEphemeral(s, i); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return EditDeferred(s, i, c.run(ctx, newInvocation(i), data))
}

func (c *HuddleCommand) run(ctx context.Context, inv *invocation, data discordgo.ApplicationCommandInteractionData) *reply {
	if len(data.Options) == 0 {
		return textReply("Pick a subcommand.")
	}

	sub := data.Options[0]
	opts := newOptionMap(sub.Options)

	switch sub.Name {
	case "create":
		return c.create(ctx, inv, opts)
	case "edit":
		return c.edit(ctx, inv, opts)
	case "delete":
		return c.delete(ctx, inv, opts)
	case "status":
		return c.status(ctx, inv, opts)
	case "list":
		return c.list(ctx, inv)
	case "purge":
		return c.purge(ctx, inv)
	case "followup":
		return c.followUp(ctx, inv, opts)
	default:
		return textReply("Unknown subcommand %q.", sub.Name)
	}
}

func (c *HuddleCommand) create(ctx context.Context, inv *invocation, opts optionMap) *reply {
	name, _ := opts.stringOpt("name")
	date, _ := opts.stringOpt("date")
	group, _ := opts.stringOpt("group")
	duration, _ := opts.intOpt("duration")

	channel, ok := opts.stringOpt("channel")
	if !ok {
		channel = inv.ChannelID
	}

	output, err := c.sessionService.CreateSession(ctx, &session.CreateSessionInput{
		ServerID:        inv.GuildID,
		Name:            name,
		CreatorID:       inv.UserID,
		ScheduledAt:     date,
		GroupID:         group,
		ChannelID:       channel,
		DurationMinutes: duration,
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	r := textReply(
		"Scheduled **%s** for %s (%s). The reminder goes to <#%s>.",
		output.Session.Name,
		output.Session.ScheduledAt.Format(models.ScheduleLayout),
		render.Countdown(output.MinutesRemaining),
		output.Session.ChannelID,
	)
	if output.Replaced {
		r.Content += " The previous session with this name was replaced."
	}
	return r
}

func (c *HuddleCommand) edit(ctx context.Context, inv *invocation, opts optionMap) *reply {
	name, _ := opts.stringOpt("name")

	input := &session.EditSessionInput{
		SessionID:   models.SessionID(inv.GuildID, name),
		RequesterID: inv.UserID,
	}
	if v, ok := opts.stringOpt("date"); ok {
		input.ScheduledAt = &v
	}
	if v, ok := opts.stringOpt("group"); ok {
		input.GroupID = &v
	}
	if v, ok := opts.stringOpt("channel"); ok {
		input.ChannelID = &v
	}
	if v, ok := opts.intOpt("duration"); ok {
		input.DurationMinutes = &v
	}

	if input.ScheduledAt == nil && input.GroupID == nil && input.ChannelID == nil && input.DurationMinutes == nil {
		return textReply("Nothing to change.")
	}

	output, err := c.sessionService.EditSession(ctx, input)
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	r := textReply("Updated **%s**.", output.Session.Name)
	if output.Rescheduled {
		r.Content += " The reminder will be posted again."
	}
	return r
}

func (c *HuddleCommand) delete(ctx context.Context, inv *invocation, opts optionMap) *reply {
	name, _ := opts.stringOpt("name")

	_, err := c.sessionService.DeleteSession(ctx, &session.DeleteSessionInput{
		SessionID:   models.SessionID(inv.GuildID, name),
		RequesterID: inv.UserID,
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	return textReply("Deleted **%s**.", name)
}

func (c *HuddleCommand) status(ctx context.Context, inv *invocation, opts optionMap) *reply {
	name, _ := opts.stringOpt("name")

	output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{
		SessionID: models.SessionID(inv.GuildID, name),
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	payload := render.Render(output.Session.Session, output.Session.MinutesRemaining)
	return &reply{Embed: renderStatusEmbed(payload)}
}

func (c *HuddleCommand) list(ctx context.Context, inv *invocation) *reply {
	output, err := c.sessionService.ListSessions(ctx, &session.ListSessionsInput{
		ServerID: inv.GuildID,
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	return &reply{Embed: renderSessionList(output.Sessions)}
}

func (c *HuddleCommand) purge(ctx context.Context, inv *invocation) *reply {
	output, err := c.sessionService.PurgeSessions(ctx, &session.PurgeSessionsInput{
		ServerID: inv.GuildID,
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	return textReply("Removed %d old sessions.", output.Removed)
}

func (c *HuddleCommand) followUp(ctx context.Context, inv *invocation, opts optionMap) *reply {
	name, _ := opts.stringOpt("name")

	err := c.sessionService.RequestFollowUp(ctx, &session.RequestFollowUpInput{
		SessionID:   models.SessionID(inv.GuildID, name),
		RequesterID: inv.UserID,
	})
	if err != nil {
		return textReply("%s", userMessage(err))
	}

	return textReply("Follow-up for **%s** sent to your DMs.", name)
}

// ConfigCommand handles the /huddle-config command
type ConfigCommand struct {
	BaseCommand
	settingsService settings.Service
}

// NewConfigCommand creates a new server settings command handler
func NewConfigCommand(settingsService settings.Service) *ConfigCommand {
	languageChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(settings.SupportedLanguages))
	for _, lang := range settings.SupportedLanguages {
		languageChoices = append(languageChoices, &discordgo.ApplicationCommandOptionChoice{Name: lang, Value: lang})
	}

	return &ConfigCommand{
		BaseCommand: BaseCommand{
			Name:        "huddle-config",
			Description: "Server settings for huddle",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "timezone",
					Description: "Set the timezone session times are written in",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "zone",
							Description: "IANA zone, e.g. Europe/Madrid",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lang",
					Description: "Set the server language",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "language",
							Description: "Language code",
							Required:    true,
							Choices:     languageChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "alert",
					Description: "Set the default alert lead",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minutes",
							Description: "Minutes before the start",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current settings",
				},
			},
		},
		settingsService: settingsService,
	}
}

// Handle processes a Discord interaction for the settings command
func (c *ConfigCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	if err := DeferEphemeral(s, i); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return EditDeferred(s, i, c.run(ctx, newInvocation(i), data))
}

func (c *ConfigCommand) run(ctx context.Context, inv *invocation, data discordgo.ApplicationCommandInteractionData) *reply {
	if inv.GuildID == "" {
		return textReply("Settings can only be changed inside a server.")
	}

	if len(data.Options) == 0 {
		return textReply("Pick a subcommand.")
	}

	sub := data.Options[0]
	opts := newOptionMap(sub.Options)

	var (
		cfg *models.ServerConfig
		err error
	)

	switch sub.Name {
	case "timezone":
		zone, _ := opts.stringOpt("zone")
		cfg, err = c.settingsService.SetTimezone(ctx, inv.GuildID, zone)
	case "lang":
		lang, _ := opts.stringOpt("language")
		cfg, err = c.settingsService.SetLanguage(ctx, inv.GuildID, lang)
	case "alert":
		minutes, _ := opts.intOpt("minutes")
		cfg, err = c.settingsService.SetAlertLead(ctx, inv.GuildID, minutes)
	case "show":
		cfg = c.settingsService.Get(ctx, inv.GuildID)
	default:
		return textReply("Unknown subcommand %q.", sub.Name)
	}

	if err != nil {
		return textReply("%s", userMessage(err))
	}

	return textReply(
		"Timezone: %s\nLanguage: %s\nAlert lead: %d minutes",
		cfg.Timezone, cfg.Language, cfg.AlertLeadMinutes,
	)
}
