package checker

import (
	"context"

	"pingdeck/internals/modules/monitor"
	"pingdeck/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Repository struct {
	pool         *pgxpool.Pool
	uptimeWindow int
	logger       *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, uptimeWindow int, logger *zerolog.Logger) *Repository {
	return &Repository{
		pool:         pool,
		uptimeWindow: uptimeWindow,
		logger:       logger,
	}
}

// DueMonitors returns every monitor whose own interval has elapsed since
// its last check, plus monitors that were never checked.
func (r *Repository) DueMonitors(ctx context.Context) ([]monitor.Monitor, error) {
	const op string = "repo.checker.due_monitors"

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, url, interval_sec, alert_threshold, status, uptime_percent, last_checked, last_response_time_ms, created_at
		 FROM monitors
		 WHERE last_checked IS NULL
		    OR last_checked < now() - make_interval(secs => interval_sec)`,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	monitors := make([]monitor.Monitor, 0)
	for rows.Next() {
		var (
			m           monitor.Monitor
			lastChecked pgtype.Timestamptz
		)
		err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.URL, &m.IntervalSec, &m.AlertThreshold,
			&m.Status, &m.UptimePercent, &lastChecked, &m.LastResponseTimeMs, &m.CreatedAt,
		)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		m.LastChecked = utils.FromPgTimestamptz(lastChecked)
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return monitors, nil
}

// SaveCycle records one check and folds it into the monitor's state in a
// single transaction: insert the immutable check row, reread the recent
// window, recompute uptime, update the monitor.
func (r *Repository) SaveCycle(ctx context.Context, m monitor.Monitor, res ProbeResult) (CycleState, error) {
	const op string = "repo.checker.save_cycle"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CycleState{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO checks (monitor_id, status, response_time_ms, checked_at) VALUES ($1, $2, $3, $4)`,
		m.ID, res.Status, res.ResponseTimeMs, res.CheckedAt,
	)
	if err != nil {
		return CycleState{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	window, err := r.recentStatuses(ctx, tx, m, r.uptimeWindow)
	if err != nil {
		return CycleState{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	state := CycleState{
		Uptime: Uptime(window),
	}
	threshold := int(m.AlertThreshold)
	if threshold > len(window) {
		threshold = len(window)
	}
	state.Recent = window[:threshold]

	_, err = tx.Exec(ctx,
		`UPDATE monitors
		 SET status = $2, uptime_percent = $3, last_checked = $4, last_response_time_ms = $5
		 WHERE id = $1`,
		m.ID, res.Status, state.Uptime, res.CheckedAt, res.ResponseTimeMs,
	)
	if err != nil {
		return CycleState{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	if err := tx.Commit(ctx); err != nil {
		return CycleState{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	return state, nil
}

func (r *Repository) recentStatuses(ctx context.Context, tx pgx.Tx, m monitor.Monitor, limit int) ([]monitor.Status, error) {
	rows, err := tx.Query(ctx,
		`SELECT status FROM checks WHERE monitor_id = $1 ORDER BY checked_at DESC LIMIT $2`,
		m.ID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]monitor.Status, 0, limit)
	for rows.Next() {
		var s monitor.Status
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}
