package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/huddle/internal/services/session Service
//go:generate mockgen -package=mocks -destination=mocks/mock_refresher.go github.com/KirkDiggler/huddle/internal/services/session Refresher

import "context"

// Service defines the interface for session operations
type Service interface {
	// CreateSession schedules a new session, replacing one with the same name
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// EditSession changes the schedule or audience of a session
	EditSession(ctx context.Context, input *EditSessionInput) (*EditSessionOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// GetSession returns a session with its current state
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions returns the sessions of a server with their current state
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// PurgeSessions removes the sessions of a server past the retention window
	PurgeSessions(ctx context.Context, input *PurgeSessionsInput) (*PurgeSessionsOutput, error)

	// SetAvailability marks a member ready or not ready
	SetAvailability(ctx context.Context, input *SetAvailabilityInput) (*SetAvailabilityOutput, error)

	// ClearAvailability removes a member's answer
	ClearAvailability(ctx context.Context, input *ClearAvailabilityInput) (*ClearAvailabilityOutput, error)

	// RequestFollowUp sends the post-session follow-up again
	RequestFollowUp(ctx context.Context, input *RequestFollowUpInput) error
}

// Refresher updates the live reminder of a session outside the scheduler tick
type Refresher interface {
	// Refresh re-renders and edits the live reminder of a session
	Refresh(ctx context.Context, sessionID string) error

	// FollowUp sends the post-session follow-up to the creator
	FollowUp(ctx context.Context, sessionID string) error

	// Withdraw removes a reminder that no longer describes its session
	Withdraw(ctx context.Context, channelID, messageID string) error
}
