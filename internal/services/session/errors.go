package session

import "fmt"

// SessionError is a custom error type for session errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     SessionError = "session not found"
	ErrNotCreator          SessionError = "only the creator of the session can do that"
	ErrFollowUpUnavailable SessionError = "follow-ups are not available"
	ErrNilConfig           SessionError = "config cannot be nil"
	ErrNilSessionRepo      SessionError = "session repository cannot be nil"
	ErrNilSettings         SessionError = "settings service cannot be nil"
	ErrNilTiming           SessionError = "timing service cannot be nil"
)

// ValidationError reports a rejected request field
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
