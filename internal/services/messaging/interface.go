package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/huddle/internal/services/messaging Sink

import (
	"context"
	"errors"
)

// ErrMessageNotFound is returned when a referenced message no longer exists
var ErrMessageNotFound = errors.New("message not found")

// Sink delivers rendered content to the chat platform
type Sink interface {
	// Send posts a new message to a channel
	Send(ctx context.Context, input *SendInput) (*SendOutput, error)

	// Edit replaces the content of an existing message. Returns
	// ErrMessageNotFound when the message was deleted.
	Edit(ctx context.Context, input *EditInput) error

	// Delete removes a message. Returns ErrMessageNotFound when it was
	// already gone.
	Delete(ctx context.Context, input *DeleteInput) error

	// Fetch looks up an existing message. Not found and transient
	// failures are reported through the result status.
	Fetch(ctx context.Context, input *FetchInput) *FetchResult

	// SendDirect sends a private message to a user
	SendDirect(ctx context.Context, input *SendDirectInput) error
}
