package settings

import "fmt"

// SettingsError is a custom error type for settings errors
type SettingsError string

// Error implements the error interface
func (e SettingsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig     SettingsError = "config cannot be nil"
	ErrNilRepository SettingsError = "server config repository cannot be nil"
)

// ValidationError reports a rejected settings value
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
