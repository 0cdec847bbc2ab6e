package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KirkDiggler/huddle/internal/models"
)

const (
	// ImminentMinutes is the lead below which a session is about to start
	ImminentMinutes = 15

	// ProgressHorizonMinutes is the countdown window of the progress bar.
	// It is fixed and does not depend on the session duration.
	ProgressHorizonMinutes = 60
)

// State classifies a session relative to the current time
type State string

const (
	StateScheduled  State = "scheduled"
	StateImminent   State = "imminent"
	StateInProgress State = "in_progress"
	StateEnded      State = "ended"
)

// Label returns a human label for the state
func (s State) Label() string {
	switch s {
	case StateImminent:
		return "Starting soon"
	case StateInProgress:
		return "In progress"
	case StateEnded:
		return "Ended"
	default:
		return "Scheduled"
	}
}

// Payload is the renderable status of a session
type Payload struct {
	SessionID        string
	Title            string
	State            State
	MinutesRemaining float64

	// Progress is the fraction of the countdown elapsed, valid when HasProgress
	Progress    float64
	HasProgress bool

	GroupID         string
	ChannelID       string
	ScheduledAt     time.Time
	DurationMinutes int

	Ready    []string
	NotReady []string
}

// Classify maps minutes remaining and duration to a state. The checks run
// in order so that zero is in progress and -duration is ended.
func Classify(minutesRemaining float64, durationMinutes int) State {
	duration := float64(durationMinutes)

	switch {
	case minutesRemaining <= 0 && minutesRemaining > -duration:
		return StateInProgress
	case minutesRemaining <= -duration:
		return StateEnded
	case minutesRemaining <= ImminentMinutes:
		return StateImminent
	default:
		return StateScheduled
	}
}

// Progress returns the elapsed fraction of the countdown window. It is only
// defined before the session starts.
func Progress(minutesRemaining float64) (float64, bool) {
	if minutesRemaining <= 0 {
		return 0, false
	}

	remaining := math.Min(minutesRemaining, ProgressHorizonMinutes)
	fraction := (ProgressHorizonMinutes - remaining) / ProgressHorizonMinutes

	return math.Max(0, math.Min(1, fraction)), true
}

// Render builds the status payload of a session
func Render(session *models.Session, minutesRemaining float64) *Payload {
	progress, hasProgress := Progress(minutesRemaining)

	return &Payload{
		SessionID:        session.ID,
		Title:            session.Name,
		State:            Classify(minutesRemaining, session.Duration()),
		MinutesRemaining: minutesRemaining,
		Progress:         progress,
		HasProgress:      hasProgress,
		GroupID:          session.GroupID,
		ChannelID:        session.ChannelID,
		ScheduledAt:      session.ScheduledAt,
		DurationMinutes:  session.Duration(),
		Ready:            append([]string{}, session.Participants.Ready...),
		NotReady:         append([]string{}, session.Participants.NotReady...),
	}
}

// ProgressBar draws fraction as a bar of width cells
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}

	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Countdown formats minutes remaining for display
func Countdown(minutesRemaining float64) string {
	if minutesRemaining <= 0 {
		return "now"
	}

	total := int(math.Ceil(minutesRemaining))
	if hours := total / 60; hours > 0 {
		return fmt.Sprintf("in %dh %dm", hours, total%60)
	}
	return fmt.Sprintf("in %dm", total)
}
