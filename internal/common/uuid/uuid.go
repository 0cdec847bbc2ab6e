package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/huddle/internal/common/uuid UUID

// UUID generates correlation identifiers, e.g. for scheduler ticks
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using random v4 identifiers
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random identifier
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
