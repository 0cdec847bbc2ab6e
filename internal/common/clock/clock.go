package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/huddle/internal/common/clock Clock

// Clock supplies the current instant so time-driven code can be tested
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock of the host
type SystemClock struct{}

// New returns the system clock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
