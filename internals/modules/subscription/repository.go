package subscription

import (
	"context"
	"time"

	"pingdeck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Repository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: logger,
	}
}

const subscriptionColumns = `
	id, user_id, plan, status,
	stripe_customer_id, stripe_subscription_id, stripe_price_id,
	paypal_subscription_id, cancel_at_period_end, start_date, end_date
`

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	const op string = "repo.subscription.get_by_user_id"

	row := r.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`,
		userID,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		return Subscription{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return sub, nil
}

func (r *Repository) CreateFree(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	const op string = "repo.subscription.create_free"

	row := r.pool.QueryRow(ctx,
		`INSERT INTO subscriptions (user_id, plan, status, start_date)
		 VALUES ($1, $2, $3, now())
		 RETURNING `+subscriptionColumns,
		userID, PlanFree, StatusActive,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		return Subscription{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return sub, nil
}

func (r *Repository) CountMonitors(ctx context.Context, userID uuid.UUID) (int32, error) {
	const op string = "repo.subscription.count_monitors"

	var count int32
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM monitors WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, utils.WrapRepoError(op, err, false, r.logger)
	}
	return count, nil
}

func (r *Repository) ActivatePlan(ctx context.Context, userID uuid.UUID, plan Plan, customerID, subscriptionID, priceID string) error {
	const op string = "repo.subscription.activate_plan"

	_, err := r.pool.Exec(ctx,
		`UPDATE subscriptions
		 SET plan = $2, status = $3,
		     stripe_customer_id = $4, stripe_subscription_id = $5, stripe_price_id = $6,
		     cancel_at_period_end = false
		 WHERE user_id = $1`,
		userID, plan, StatusActive, customerID, subscriptionID, priceID,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *Repository) SetStatusByStripeSubID(ctx context.Context, stripeSubID string, status Status, endDate time.Time) error {
	const op string = "repo.subscription.set_status_by_stripe_sub_id"

	_, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $2, end_date = $3 WHERE stripe_subscription_id = $1`,
		stripeSubID, status, utils.ToPgTimestamptz(endDate),
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *Repository) SetStatusByPayPalSubID(ctx context.Context, paypalSubID string, status Status, cancelAtPeriodEnd bool) error {
	const op string = "repo.subscription.set_status_by_paypal_sub_id"

	_, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $2, cancel_at_period_end = $3 WHERE paypal_subscription_id = $1`,
		paypalSubID, status, cancelAtPeriodEnd,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *Repository) DowngradeToFree(ctx context.Context, userID uuid.UUID) error {
	const op string = "repo.subscription.downgrade_to_free"

	_, err := r.pool.Exec(ctx,
		`UPDATE subscriptions
		 SET plan = $2, status = $3,
		     stripe_subscription_id = NULL, stripe_price_id = NULL,
		     paypal_subscription_id = NULL, cancel_at_period_end = false,
		     end_date = NULL
		 WHERE user_id = $1`,
		userID, PlanFree, StatusActive,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *Repository) CreatePayment(ctx context.Context, p Payment) error {
	const op string = "repo.subscription.create_payment"

	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (user_id, amount, currency, status, stripe_payment_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.UserID, p.Amount, p.Currency, p.Status, p.StripePaymentID,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (Subscription, error) {
	var (
		s                                            Subscription
		customerID, subscriptionID, priceID, paypal  *string
		endDate                                      *time.Time
	)

	err := row.Scan(
		&s.ID, &s.UserID, &s.Plan, &s.Status,
		&customerID, &subscriptionID, &priceID,
		&paypal, &s.CancelAtPeriodEnd, &s.StartDate, &endDate,
	)
	if err != nil {
		return Subscription{}, err
	}

	if customerID != nil {
		s.StripeCustomerID = *customerID
	}
	if subscriptionID != nil {
		s.StripeSubscriptionID = *subscriptionID
	}
	if priceID != nil {
		s.StripePriceID = *priceID
	}
	if paypal != nil {
		s.PayPalSubscriptionID = *paypal
	}
	if endDate != nil {
		s.EndDate = *endDate
	}

	return s, nil
}
