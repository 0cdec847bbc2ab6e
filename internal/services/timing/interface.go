package timing

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/huddle/internal/services/timing Service

// Service converts naive server-local schedules into time remaining
type Service interface {
	// MinutesUntil returns the signed minutes between now and scheduledAt,
	// where scheduledAt is a naive wall-clock time in the given timezone.
	// Positive values are in the future.
	MinutesUntil(scheduledAt time.Time, timezone string) float64

	// Location resolves a timezone name, falling back to the default zone
	Location(timezone string) *time.Location

	// LocalNow returns the current wall clock of the timezone as a naive time
	LocalNow(timezone string) time.Time
}
