package messaging

import (
	"fmt"

	"github.com/KirkDiggler/huddle/internal/models"
	"github.com/KirkDiggler/huddle/internal/services/render"
)

// AudienceMention returns the plain mention that precedes a fresh reminder
func AudienceMention(groupID string) string {
	if groupID == "" {
		return ""
	}
	return fmt.Sprintf("<@&%s>", groupID)
}

// ReminderContent builds the content of the live reminder message
func ReminderContent(payload *render.Payload) *Content {
	return &Content{Status: payload}
}

// FollowUpContent builds the post-session message sent to the creator
func FollowUpContent(session *models.Session) *Content {
	text := fmt.Sprintf(
		"**%s** has ended. %d confirmed, %d declined.",
		session.Name,
		len(session.Participants.Ready),
		len(session.Participants.NotReady),
	)

	if len(session.Participants.Ready) == 0 {
		text += " Nobody confirmed this time."
	} else {
		text += " Use `/huddle create` with the same name to schedule the next one."
	}

	return &Content{Text: text}
}
