package cleanup

import (
	"context"

	"pingdeck/internals/modules/subscription"
	"pingdeck/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Read alerts and notifications are kept this long before the sweep
// removes them. Unread ones are never touched.
const readFeedRetentionDays = 30

// Sweeper prunes old rows so the feed tables and check history stay
// bounded. Check retention follows the owner's plan.
type Sweeper struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewSweeper(pool *pgxpool.Pool, logger *zerolog.Logger) *Sweeper {
	return &Sweeper{
		pool:   pool,
		logger: logger,
	}
}

func (s *Sweeper) Sweep(ctx context.Context) error {
	const op string = "cleanup.sweep"

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM alerts WHERE read = true AND created_at < now() - make_interval(days => $1)`,
		readFeedRetentionDays,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, s.logger)
	}
	alertsPruned := tag.RowsAffected()

	tag, err = s.pool.Exec(ctx,
		`DELETE FROM notifications WHERE read = true AND created_at < now() - make_interval(days => $1)`,
		readFeedRetentionDays,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, s.logger)
	}
	notificationsPruned := tag.RowsAffected()

	free := subscription.LimitsFor(subscription.PlanFree)
	pro := subscription.LimitsFor(subscription.PlanPro)
	enterprise := subscription.LimitsFor(subscription.PlanEnterprise)

	tag, err = s.pool.Exec(ctx,
		`DELETE FROM checks c
		 USING monitors m
		 JOIN subscriptions sub ON sub.user_id = m.user_id
		 WHERE c.monitor_id = m.id
		   AND c.checked_at < now() - make_interval(days =>
		       CASE sub.plan
		         WHEN 'ENTERPRISE' THEN $1::int
		         WHEN 'PRO' THEN $2::int
		         ELSE $3::int
		       END)`,
		enterprise.RetentionDays, pro.RetentionDays, free.RetentionDays,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, s.logger)
	}
	checksPruned := tag.RowsAffected()

	s.logger.Info().
		Int64("alerts", alertsPruned).
		Int64("notifications", notificationsPruned).
		Int64("checks", checksPruned).
		Msg("cleanup sweep complete")

	return nil
}
