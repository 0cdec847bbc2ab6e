package session

import (
	"time"

	"github.com/KirkDiggler/huddle/internal/models"
	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	"github.com/KirkDiggler/huddle/internal/services/render"
	"github.com/KirkDiggler/huddle/internal/services/settings"
	"github.com/KirkDiggler/huddle/internal/services/timing"
)

// Config holds configuration for the session service
type Config struct {
	SessionRepo sessionRepo.Repository
	Settings    settings.Service
	Timing      timing.Service

	// Refresher edits live reminders after changes, optional
	Refresher Refresher

	// Retention is how long past its start a session is kept
	Retention time.Duration
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	ServerID  string
	Name      string
	CreatorID string

	// ScheduledAt is "DD-MM-YYYY HH:MM" or "DD/MM/YYYY HH:MM" in server time
	ScheduledAt string

	// GroupID and ChannelID accept raw IDs or mentions
	GroupID   string
	ChannelID string

	// DurationMinutes defaults to models.DefaultDurationMinutes when zero
	DurationMinutes int
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	Session *models.Session

	// Replaced is true when a session with the same name was overwritten
	Replaced bool

	MinutesRemaining float64
}

// EditSessionInput contains parameters for editing a session. Nil fields are
// left unchanged.
type EditSessionInput struct {
	SessionID   string
	RequesterID string

	ScheduledAt     *string
	DurationMinutes *int
	GroupID         *string
	ChannelID       *string
}

// EditSessionOutput contains the result of editing a session
type EditSessionOutput struct {
	Session *models.Session

	// Rescheduled is true when the reminder will be posted again
	Rescheduled bool
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	SessionID   string
	RequesterID string
}

// DeleteSessionOutput contains the result of deleting a session
type DeleteSessionOutput struct {
	Deleted bool
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains a session and its current state
type GetSessionOutput struct {
	Session *SessionStatus
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct {
	ServerID string
}

// ListSessionsOutput contains the sessions of a server ordered by start
type ListSessionsOutput struct {
	Sessions []*SessionStatus
}

// SessionStatus pairs a session with its time-dependent state
type SessionStatus struct {
	Session          *models.Session
	MinutesRemaining float64
	State            render.State
}

// PurgeSessionsInput contains parameters for a manual purge
type PurgeSessionsInput struct {
	ServerID string
}

// PurgeSessionsOutput contains the result of a manual purge
type PurgeSessionsOutput struct {
	Removed int
}

// SetAvailabilityInput contains parameters for answering a reminder
type SetAvailabilityInput struct {
	SessionID string
	MemberID  string
	Status    models.AvailabilityStatus
}

// SetAvailabilityOutput contains the result of answering a reminder
type SetAvailabilityOutput struct {
	// Updated is false when the member already had this answer
	Updated bool
	Session *models.Session
}

// ClearAvailabilityInput contains parameters for withdrawing an answer
type ClearAvailabilityInput struct {
	SessionID string
	MemberID  string
}

// ClearAvailabilityOutput contains the result of withdrawing an answer
type ClearAvailabilityOutput struct {
	Updated bool
	Session *models.Session
}

// RequestFollowUpInput contains parameters for re-sending a follow-up
type RequestFollowUpInput struct {
	SessionID   string
	RequesterID string
}
