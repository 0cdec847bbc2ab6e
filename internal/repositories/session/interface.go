package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/huddle/internal/repositories/session Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/huddle/internal/models"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Repository defines the interface for session persistence
type Repository interface {
	// SaveSession derives the session ID from server and name and replaces any
	// record with the same ID
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// ListSessions retrieves the sessions of every server
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// ListSessionsByServer retrieves the sessions of one server
	ListSessionsByServer(ctx context.Context, input *ListSessionsByServerInput) (*ListSessionsOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// PurgeExpired removes sessions scheduled strictly before the cutoff
	PurgeExpired(ctx context.Context, input *PurgeExpiredInput) (*PurgeExpiredOutput, error)

	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error
}
