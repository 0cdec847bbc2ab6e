package models

import (
	"strings"
	"time"
)

// DefaultDurationMinutes is used when a session is created without a duration
const DefaultDurationMinutes = 120

// ScheduleLayout is the canonical wall-clock layout for scheduled times
const ScheduleLayout = "02-01-2006 15:04"

// AvailabilityStatus represents a member's answer to a session reminder
type AvailabilityStatus string

const (
	// AvailabilityReady indicates the member confirmed they will attend
	AvailabilityReady AvailabilityStatus = "ready"

	// AvailabilityNotReady indicates the member will not attend
	AvailabilityNotReady AvailabilityStatus = "not_ready"
)

// IsValid reports whether the status is one of the known values
func (s AvailabilityStatus) IsValid() bool {
	return s == AvailabilityReady || s == AvailabilityNotReady
}

// Participants holds the members who answered a session reminder.
// Ready and NotReady never share a member.
type Participants struct {
	// Ready contains the IDs of members who confirmed
	Ready []string `json:"ready"`

	// NotReady contains the IDs of members who declined
	NotReady []string `json:"not_ready"`
}

// Session represents a scheduled group activity
type Session struct {
	// ID is derived from the server ID and the normalized name
	ID string `json:"session_id"`

	// ServerID is the Discord guild that owns the session
	ServerID string `json:"server_id"`

	// Name is the human label of the session
	Name string `json:"name"`

	// ScheduledAt is a naive wall-clock time, interpreted in the server timezone.
	// Only the date, hour and minute are meaningful; the location is always UTC.
	ScheduledAt time.Time `json:"scheduled_at"`

	// DurationMinutes is how long the session lasts once started
	DurationMinutes int `json:"duration_minutes"`

	// GroupID is the role targeted by the reminder
	GroupID string `json:"group_id"`

	// ChannelID is where reminders are posted
	ChannelID string `json:"channel_id"`

	// CreatorID is the user who created the session
	CreatorID string `json:"creator_id"`

	// CreatedAt is the naive local server time at creation
	CreatedAt time.Time `json:"created_at"`

	// Notified indicates the pre-start reminder was posted
	Notified bool `json:"notified"`

	// EndNotified indicates the post-end follow-up was handled
	EndNotified bool `json:"end_notified"`

	// MessageRef is the ID of the live reminder message, nil until posted
	MessageRef *string `json:"message_ref,omitempty"`

	// Participants tracks who answered the reminder
	Participants Participants `json:"participants"`
}

// HasMessage reports whether a reminder message is known for the session
func (s *Session) HasMessage() bool {
	return s.MessageRef != nil && *s.MessageRef != ""
}

// Duration returns the session length in minutes, falling back to
// DefaultDurationMinutes for records stored without one
func (s *Session) Duration() int {
	if s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return s.DurationMinutes
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	c := *s
	if s.MessageRef != nil {
		ref := *s.MessageRef
		c.MessageRef = &ref
	}
	c.Participants.Ready = append([]string(nil), s.Participants.Ready...)
	c.Participants.NotReady = append([]string(nil), s.Participants.NotReady...)

	return &c
}

// NormalizeName lowercases a session name and joins its words with underscores
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// SessionID derives the natural key of a session
func SessionID(serverID, name string) string {
	return serverID + "_" + NormalizeName(name)
}

// StringRef returns a pointer to a copy of v
func StringRef(v string) *string {
	return &v
}
