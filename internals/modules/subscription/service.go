package subscription

import (
	"context"
	"fmt"
	"time"

	"pingdeck/pkg/apperror"

	"github.com/google/uuid"
)

// Store is the slice of Repository the service needs; tests swap in fakes.
type Store interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Subscription, error)
	CreateFree(ctx context.Context, userID uuid.UUID) (Subscription, error)
	CountMonitors(ctx context.Context, userID uuid.UUID) (int32, error)
	ActivatePlan(ctx context.Context, userID uuid.UUID, plan Plan, customerID, subscriptionID, priceID string) error
	SetStatusByStripeSubID(ctx context.Context, stripeSubID string, status Status, endDate time.Time) error
	SetStatusByPayPalSubID(ctx context.Context, paypalSubID string, status Status, cancelAtPeriodEnd bool) error
	DowngradeToFree(ctx context.Context, userID uuid.UUID) error
	CreatePayment(ctx context.Context, p Payment) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

// loadOrCreate returns the user's subscription, creating a FREE/ACTIVE one
// for accounts that predate the subscription table.
func (s *Service) loadOrCreate(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	sub, err := s.store.GetByUserID(ctx, userID)
	if err == nil {
		return sub, nil
	}
	if apperror.IsKind(err, apperror.NotFound) {
		return s.store.CreateFree(ctx, userID)
	}
	return Subscription{}, err
}

// CheckMonitorAllowance gates monitor creation: the subscription must be
// ACTIVE, the plan ceiling must not be reached, and the requested interval
// must not undercut the plan minimum.
func (s *Service) CheckMonitorAllowance(ctx context.Context, userID uuid.UUID, intervalSec int32) error {
	const op string = "service.subscription.check_monitor_allowance"

	sub, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if sub.Status != StatusActive {
		return &apperror.Error{
			Kind:    apperror.Forbidden,
			Op:      op,
			Message: "no active subscription",
		}
	}

	limits := LimitsFor(sub.Plan)

	count, err := s.store.CountMonitors(ctx, userID)
	if err != nil {
		return err
	}
	if count >= limits.MaxMonitors {
		return &apperror.Error{
			Kind:    apperror.QuotaExceeded,
			Op:      op,
			Message: fmt.Sprintf("monitor limit reached for current plan (%d monitors), upgrade to add more", limits.MaxMonitors),
		}
	}

	if intervalSec < limits.MinIntervalSec {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("check interval below plan minimum (%ds)", limits.MinIntervalSec),
		}
	}

	return nil
}

type Details struct {
	Plan              Plan
	Status            Status
	CurrentMonitors   int32
	MaxMonitors       int32
	MinIntervalSec    int32
	CancelAtPeriodEnd bool
	EndDate           time.Time
}

func (s *Service) GetDetails(ctx context.Context, userID uuid.UUID) (Details, error) {
	sub, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return Details{}, err
	}

	count, err := s.store.CountMonitors(ctx, userID)
	if err != nil {
		return Details{}, err
	}

	limits := LimitsFor(sub.Plan)

	return Details{
		Plan:              sub.Plan,
		Status:            sub.Status,
		CurrentMonitors:   count,
		MaxMonitors:       limits.MaxMonitors,
		MinIntervalSec:    limits.MinIntervalSec,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		EndDate:           sub.EndDate,
	}, nil
}

func (s *Service) DowngradeToFree(ctx context.Context, userID uuid.UUID) error {
	const op string = "service.subscription.downgrade_to_free"

	sub, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	if sub.Plan == PlanFree {
		return &apperror.Error{
			Kind:    apperror.Conflict,
			Op:      op,
			Message: "already on the free plan",
		}
	}

	return s.store.DowngradeToFree(ctx, userID)
}

// Webhook-driven mutations. These are the only paths that upgrade a plan.

func (s *Service) ApplyCheckoutCompleted(ctx context.Context, userID uuid.UUID, plan Plan, customerID, subscriptionID, priceID string, payment Payment) error {
	const op string = "service.subscription.apply_checkout_completed"

	if !plan.Valid() {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("unknown plan %q in checkout metadata", plan),
		}
	}

	if err := s.store.ActivatePlan(ctx, userID, plan, customerID, subscriptionID, priceID); err != nil {
		return err
	}
	return s.store.CreatePayment(ctx, payment)
}

func (s *Service) ApplyStripeSubscriptionDeleted(ctx context.Context, stripeSubID string, endedAt time.Time) error {
	return s.store.SetStatusByStripeSubID(ctx, stripeSubID, StatusCancelled, endedAt)
}

func (s *Service) ApplyStripePaymentFailed(ctx context.Context, stripeSubID string) error {
	return s.store.SetStatusByStripeSubID(ctx, stripeSubID, StatusExpired, time.Time{})
}

func (s *Service) ApplyPayPalEvent(ctx context.Context, paypalSubID string, eventType string) error {
	switch eventType {
	case "BILLING.SUBSCRIPTION.ACTIVATED":
		return s.store.SetStatusByPayPalSubID(ctx, paypalSubID, StatusActive, false)
	case "BILLING.SUBSCRIPTION.CANCELLED":
		// access continues until the period ends
		return s.store.SetStatusByPayPalSubID(ctx, paypalSubID, StatusCancelled, true)
	case "BILLING.SUBSCRIPTION.SUSPENDED":
		return s.store.SetStatusByPayPalSubID(ctx, paypalSubID, StatusSuspended, false)
	case "BILLING.SUBSCRIPTION.EXPIRED":
		return s.store.SetStatusByPayPalSubID(ctx, paypalSubID, StatusExpired, false)
	default:
		return nil // ignore unrelated events
	}
}
