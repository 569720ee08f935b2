package subscription

import (
	"time"

	"github.com/google/uuid"
)

type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanPro        Plan = "PRO"
	PlanEnterprise Plan = "ENTERPRISE"
)

// Valid reports whether p is one of the known plans. Webhook payloads
// carry the plan as free-form metadata, so it must be checked before it
// reaches the database.
func (p Plan) Valid() bool {
	_, ok := planLimits[p]
	return ok
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusSuspended Status = "SUSPENDED"
	StatusExpired   Status = "EXPIRED"
	StatusPending   Status = "PENDING"
)

// Limits is everything a plan gates: how many monitors a user may create,
// how tight their check interval may be, and how long checks are retained.
type Limits struct {
	MaxMonitors    int32
	MinIntervalSec int32
	RetentionDays  int32
}

var planLimits = map[Plan]Limits{
	PlanFree:       {MaxMonitors: 5, MinIntervalSec: 300, RetentionDays: 1},
	PlanPro:        {MaxMonitors: 50, MinIntervalSec: 60, RetentionDays: 30},
	PlanEnterprise: {MaxMonitors: 999, MinIntervalSec: 30, RetentionDays: 90},
}

// LimitsFor falls back to the FREE limits for unknown plans so a corrupted
// row can never unlock unlimited monitors.
func LimitsFor(p Plan) Limits {
	if l, ok := planLimits[p]; ok {
		return l
	}
	return planLimits[PlanFree]
}

type Subscription struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Plan                 Plan
	Status               Status
	StripeCustomerID     string
	StripeSubscriptionID string
	StripePriceID        string
	PayPalSubscriptionID string
	CancelAtPeriodEnd    bool
	StartDate            time.Time
	EndDate              time.Time
}

type Payment struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          int64 // minor units
	Currency        string
	Status          string
	StripePaymentID string
	CreatedAt       time.Time
}
