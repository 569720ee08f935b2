package alert

import (
	"context"

	"pingdeck/pkg/apperror"
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

func (r *Repository) Create(ctx context.Context, ev Event) (uuid.UUID, error) {
	const op string = "repo.alert.create"

	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO alerts (monitor_id, user_id, type, message) VALUES ($1, $2, $3, $4) RETURNING id`,
		ev.MonitorID, ev.UserID, ev.Type, ev.Message,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return id, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	const op string = "repo.alert.list_by_user"

	rows, err := r.pool.Query(ctx,
		`SELECT id, monitor_id, user_id, type, message, read, created_at
		 FROM alerts WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 50`,
		userID,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	alerts := make([]Alert, 0)
	for rows.Next() {
		var a Alert
		err := rows.Scan(&a.ID, &a.MonitorID, &a.UserID, &a.Type, &a.Message, &a.Read, &a.CreatedAt)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return alerts, nil
}

func (r *Repository) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	const op string = "repo.alert.mark_read"

	tag, err := r.pool.Exec(ctx,
		`UPDATE alerts SET read = true WHERE id = $1 AND user_id = $2`,
		alertID, userID,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "alert not found",
		}
	}

	return nil
}
