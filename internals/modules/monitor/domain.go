package monitor

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUp      Status = "UP"
	StatusDown    Status = "DOWN"
	StatusPending Status = "PENDING" // no check has completed yet
)

type Monitor struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	URL                string
	IntervalSec        int32
	AlertThreshold     int32 // consecutive DOWN checks before a DOWN alert
	Status             Status
	UptimePercent      float64
	LastChecked        time.Time // zero until the first check
	LastResponseTimeMs *int64
	CreatedAt          time.Time
}

type CreateMonitorCmd struct {
	UserID         uuid.UUID
	Name           string
	URL            string
	IntervalSec    int32
	AlertThreshold int32
}
