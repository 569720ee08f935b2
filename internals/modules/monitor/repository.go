package monitor

import (
	"context"

	"pingdeck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
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

const monitorColumns = `id, user_id, name, url, interval_sec, alert_threshold, status, uptime_percent, last_checked, last_response_time_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonitor(row rowScanner) (Monitor, error) {
	var (
		m           Monitor
		lastChecked pgtype.Timestamptz
	)
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.URL, &m.IntervalSec, &m.AlertThreshold,
		&m.Status, &m.UptimePercent, &lastChecked, &m.LastResponseTimeMs, &m.CreatedAt,
	)
	if err != nil {
		return Monitor{}, err
	}
	m.LastChecked = utils.FromPgTimestamptz(lastChecked)

	return m, nil
}

func (r *Repository) Create(ctx context.Context, cmd CreateMonitorCmd) (Monitor, error) {
	const op string = "repo.monitor.create"

	row := r.pool.QueryRow(ctx,
		`INSERT INTO monitors (user_id, name, url, interval_sec, alert_threshold, status, uptime_percent)
		 VALUES ($1, $2, $3, $4, $5, 'PENDING', 100)
		 RETURNING `+monitorColumns,
		cmd.UserID, cmd.Name, cmd.URL, cmd.IntervalSec, cmd.AlertThreshold,
	)

	m, err := scanMonitor(row)
	if err != nil {
		return Monitor{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	return m, nil
}

func (r *Repository) GetByID(ctx context.Context, monitorID uuid.UUID) (Monitor, error) {
	const op string = "repo.monitor.get_by_id"

	row := r.pool.QueryRow(ctx,
		`SELECT `+monitorColumns+` FROM monitors WHERE id = $1`,
		monitorID,
	)

	m, err := scanMonitor(row)
	if err != nil {
		return Monitor{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return m, nil
}

func (r *Repository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Monitor, error) {
	const op string = "repo.monitor.get_all_by_user"

	rows, err := r.pool.Query(ctx,
		`SELECT `+monitorColumns+` FROM monitors WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	monitors := make([]Monitor, 0)
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return monitors, nil
}

func (r *Repository) ExistsByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (bool, error) {
	const op string = "repo.monitor.exists_by_user_and_url"

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM monitors WHERE user_id = $1 AND url = $2)`,
		userID, url,
	).Scan(&exists)
	if err != nil {
		return false, utils.WrapRepoError(op, err, false, r.logger)
	}

	return exists, nil
}

// Delete removes the monitor only if it belongs to userID. Checks, alerts
// and notifications for it go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, userID, monitorID uuid.UUID) (bool, error) {
	const op string = "repo.monitor.delete"

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM monitors WHERE id = $1 AND user_id = $2`,
		monitorID, userID,
	)
	if err != nil {
		return false, utils.WrapRepoError(op, err, false, r.logger)
	}

	return tag.RowsAffected() > 0, nil
}
