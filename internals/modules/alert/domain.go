package alert

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDown Type = "DOWN"
	TypeUp   Type = "UP"
	TypeSlow Type = "SLOW_RESPONSE"
	TypeErr  Type = "ERROR"
)

// Critical alert types are always emailed, whatever the user's channel
// preferences say.
func (t Type) Critical() bool {
	return t == TypeDown || t == TypeErr
}

type Alert struct {
	ID        uuid.UUID
	MonitorID uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Event is what the check pipeline emits when a cycle decides an alert
// is due for a monitor.
type Event struct {
	MonitorID   uuid.UUID
	UserID      uuid.UUID
	MonitorName string
	Type        Type
	Message     string
}
