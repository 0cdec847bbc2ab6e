package messaging

import (
	"github.com/KirkDiggler/huddle/internal/services/render"
)

// Content is what a message shows. Text is plain content placed above the
// status card, Status is the rendered session card.
type Content struct {
	Text   string
	Status *render.Payload
}

// SendInput contains parameters for posting a message
type SendInput struct {
	ChannelID string
	Content   *Content
}

// SendOutput contains the result of posting a message
type SendOutput struct {
	MessageID string
}

// EditInput contains parameters for editing a message
type EditInput struct {
	ChannelID string
	MessageID string
	Content   *Content
}

// DeleteInput contains parameters for removing a message
type DeleteInput struct {
	ChannelID string
	MessageID string
}

// FetchInput contains parameters for looking up a message
type FetchInput struct {
	ChannelID string
	MessageID string
}

// FetchStatus is the outcome of a message lookup
type FetchStatus string

const (
	FetchFound    FetchStatus = "found"
	FetchNotFound FetchStatus = "not_found"
	FetchFailed   FetchStatus = "failed"
)

// FetchResult is the outcome of a message lookup. Err is set when Status is
// FetchFailed.
type FetchResult struct {
	Status    FetchStatus
	MessageID string
	Text      string
	Err       error
}

// Found builds a successful lookup result
func Found(messageID, text string) *FetchResult {
	return &FetchResult{Status: FetchFound, MessageID: messageID, Text: text}
}

// NotFound builds a lookup result for a missing message
func NotFound() *FetchResult {
	return &FetchResult{Status: FetchNotFound}
}

// Failed builds a lookup result for a transient failure
func Failed(err error) *FetchResult {
	return &FetchResult{Status: FetchFailed, Err: err}
}

// SendDirectInput contains parameters for a private message
type SendDirectInput struct {
	UserID  string
	Content *Content
}
