package timing

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/common/clock"
)

// Accepted layouts for user supplied schedules
var scheduleLayouts = []string{
	"02-01-2006 15:04",
	"02/01/2006 15:04",
}

// ErrInvalidSchedule is returned when a schedule string matches no layout
var ErrInvalidSchedule = errors.New("schedule must look like DD-MM-YYYY HH:MM or DD/MM/YYYY HH:MM")

// Config holds configuration for the timing service
type Config struct {
	// Clock supplies the current instant
	Clock clock.Clock

	// DefaultTimezone is used when a server has no valid timezone
	DefaultTimezone string
}

type service struct {
	clock           clock.Clock
	defaultTimezone string
	defaultLocation *time.Location

	// timezone name -> *time.Location, unknown names map to the default
	locations sync.Map
}

// New creates a timing service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone %q: %w", cfg.DefaultTimezone, err)
	}

	return &service{
		clock:           cfg.Clock,
		defaultTimezone: cfg.DefaultTimezone,
		defaultLocation: loc,
	}, nil
}

// MinutesUntil implements Service
func (s *service) MinutesUntil(scheduledAt time.Time, timezone string) float64 {
	start := Localize(scheduledAt, s.Location(timezone))
	return start.Sub(s.clock.Now()).Minutes()
}

// Location implements Service
func (s *service) Location(timezone string) *time.Location {
	if timezone == "" {
		return s.defaultLocation
	}

	if cached, ok := s.locations.Load(timezone); ok {
		return cached.(*time.Location)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn().
			Err(err).
			Str("timezone", timezone).
			Str("fallback", s.defaultTimezone).
			Msg("unknown timezone, using default")
		loc = s.defaultLocation
	}

	s.locations.Store(timezone, loc)
	return loc
}

// LocalNow implements Service
func (s *service) LocalNow(timezone string) time.Time {
	return Naive(s.clock.Now().In(s.Location(timezone)))
}

// Naive drops the location of t and keeps its wall clock, truncated to seconds
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// Localize places a naive wall-clock time in loc
func Localize(naive time.Time, loc *time.Location) time.Time {
	return time.Date(naive.Year(), naive.Month(), naive.Day(), naive.Hour(), naive.Minute(), naive.Second(), 0, loc)
}

// ParseSchedule parses a user supplied date and time into a naive time
func ParseSchedule(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidSchedule
}

// ValidTimezone reports whether name is a loadable IANA zone
func ValidTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
