package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAlert Type = "ALERT"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MonitorID uuid.UUID
	Type      Type
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Preferences controls which channels a user's alerts fan out to. Email for
// critical alerts is always on regardless of these flags.
type Preferences struct {
	UserID        uuid.UUID
	Email         bool
	SMS           bool
	Slack         bool
	Webhook       bool
	PhoneNumber   string
	SlackWebhook  string
	CustomWebhook string
}

// OutboundAlert is what the alert pipeline hands to the dispatcher after
// the alert and its notification row are persisted.
type OutboundAlert struct {
	UserID      uuid.UUID
	UserEmail   string
	MonitorID   uuid.UUID
	MonitorName string
	Kind        string
	Message     string
	Critical    bool
}

// EmailJob is the payload published to the email queue and consumed by the
// SMTP worker.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
