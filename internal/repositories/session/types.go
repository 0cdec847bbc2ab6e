package session

import (
	"time"

	"github.com/KirkDiggler/huddle/internal/models"
)

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// ListSessionsInput contains parameters for listing all sessions
type ListSessionsInput struct {
}

// ListSessionsByServerInput contains parameters for listing a server's sessions
type ListSessionsByServerInput struct {
	ServerID string
}

// ListSessionsOutput contains listed sessions ordered by ID
type ListSessionsOutput struct {
	Sessions []*models.Session
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput reports whether a record was removed
type DeleteSessionOutput struct {
	Deleted bool
}

// PurgeExpiredInput contains parameters for purging old sessions
type PurgeExpiredInput struct {
	// Cutoff is a naive wall-clock time; sessions scheduled before it are removed
	Cutoff time.Time

	// ServerID restricts the purge to one server when set
	ServerID string
}

// PurgeExpiredOutput contains the result of a purge
type PurgeExpiredOutput struct {
	Removed int
}
