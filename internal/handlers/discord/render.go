package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/huddle/internal/models"
	"github.com/KirkDiggler/huddle/internal/services/messaging"
	"github.com/KirkDiggler/huddle/internal/services/render"
	"github.com/KirkDiggler/huddle/internal/services/session"
)

// Button actions, encoded as "<action>:<session id>" in the custom ID
const (
	ButtonReady    = "rsvp_ready"
	ButtonNotReady = "rsvp_not_ready"
	ButtonClear    = "rsvp_clear"
)

const progressBarWidth = 12

// maxEmbedFields is the Discord limit of fields per embed
const maxEmbedFields = 25

// Embed colors per state
const (
	colorScheduled  = 0x5865f2
	colorImminent   = 0xfee75c
	colorInProgress = 0x57f287
	colorEnded      = 0x99aab5
)

func buttonID(action, sessionID string) string {
	return action + ":" + sessionID
}

// parseButtonID splits a custom ID into its action and session ID
func parseButtonID(customID string) (string, string, bool) {
	action, sessionID, ok := strings.Cut(customID, ":")
	if !ok || sessionID == "" {
		return "", "", false
	}

	switch action {
	case ButtonReady, ButtonNotReady, ButtonClear:
		return action, sessionID, true
	default:
		return "", "", false
	}
}

func stateColor(state render.State) int {
	switch state {
	case render.StateImminent:
		return colorImminent
	case render.StateInProgress:
		return colorInProgress
	case render.StateEnded:
		return colorEnded
	default:
		return colorScheduled
	}
}

// renderStatusEmbed draws the status card of a session
func renderStatusEmbed(p *render.Payload) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Starts",
			Value:  p.ScheduledAt.Format(models.ScheduleLayout),
			Inline: true,
		},
		{
			Name:   "Duration",
			Value:  fmt.Sprintf("%d min", p.DurationMinutes),
			Inline: true,
		},
		{
			Name:   "Status",
			Value:  p.State.Label(),
			Inline: true,
		},
	}

	if p.HasProgress {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Countdown",
			Value: fmt.Sprintf("`%s` %s", render.ProgressBar(p.Progress, progressBarWidth), render.Countdown(p.MinutesRemaining)),
		})
	}

	if p.GroupID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Group",
			Value: messaging.AudienceMention(p.GroupID),
		})
	}

	fields = append(fields,
		&discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Ready (%d)", len(p.Ready)),
			Value:  memberList(p.Ready),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Not ready (%d)", len(p.NotReady)),
			Value:  memberList(p.NotReady),
			Inline: true,
		},
	)

	return &discordgo.MessageEmbed{
		Title:  p.Title,
		Color:  stateColor(p.State),
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: p.SessionID},
	}
}

func memberList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}

	mentions := make([]string, 0, len(ids))
	for _, id := range ids {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, "\n")
}

// renderButtons returns the RSVP buttons, or none once the session ended
func renderButtons(p *render.Payload) []discordgo.MessageComponent {
	if p.State == render.StateEnded {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Ready",
					Style:    discordgo.SuccessButton,
					CustomID: buttonID(ButtonReady, p.SessionID),
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Not ready",
					Style:    discordgo.DangerButton,
					CustomID: buttonID(ButtonNotReady, p.SessionID),
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				},
				discordgo.Button{
					Label:    "Clear",
					Style:    discordgo.SecondaryButton,
					CustomID: buttonID(ButtonClear, p.SessionID),
				},
			},
		},
	}
}

// renderMessage converts content into the parts of a Discord message
func renderMessage(c *messaging.Content) (string, []*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	if c == nil {
		return "", nil, nil
	}

	if c.Status == nil {
		return c.Text, nil, nil
	}

	return c.Text, []*discordgo.MessageEmbed{renderStatusEmbed(c.Status)}, renderButtons(c.Status)
}

// renderSessionList draws the sessions of a server as one embed
func renderSessionList(statuses []*session.SessionStatus) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Sessions",
		Color: colorScheduled,
	}

	if len(statuses) == 0 {
		embed.Description = "No sessions scheduled."
		return embed
	}

	shown := statuses
	if len(shown) > maxEmbedFields {
		shown = shown[:maxEmbedFields]
		embed.Description = fmt.Sprintf("Showing %d of %d sessions.", maxEmbedFields, len(statuses))
	}

	for _, st := range shown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: st.Session.Name,
			Value: fmt.Sprintf(
				"%s · %s · %s\n%d ready, %d not ready",
				st.Session.ScheduledAt.Format(models.ScheduleLayout),
				st.State.Label(),
				render.Countdown(st.MinutesRemaining),
				len(st.Session.Participants.Ready),
				len(st.Session.Participants.NotReady),
			),
		})
	}

	return embed
}
