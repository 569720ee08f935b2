package notification

import (
	"context"
	"errors"

	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *Repository) Create(ctx context.Context, n Notification) (uuid.UUID, error) {
	const op string = "repo.notification.create"

	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, monitor_id, type, title, message)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		n.UserID, n.MonitorID, n.Type, n.Title, n.Message,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return id, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	const op string = "repo.notification.list_by_user"

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, monitor_id, type, title, message, read, created_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 50`,
		userID,
	)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.MonitorID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return notifications, nil
}

func (r *Repository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	const op string = "repo.notification.mark_read"

	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "notification not found",
		}
	}

	return nil
}

// GetPreferences returns the user's channel preferences, falling back to
// email-only defaults when no row exists yet.
func (r *Repository) GetPreferences(ctx context.Context, userID uuid.UUID) (Preferences, error) {
	const op string = "repo.notification.get_preferences"

	p := Preferences{UserID: userID, Email: true}
	err := r.pool.QueryRow(ctx,
		`SELECT email, sms, slack, webhook,
		        COALESCE(phone_number, ''), COALESCE(slack_webhook, ''), COALESCE(custom_webhook, '')
		 FROM notification_preferences WHERE user_id = $1`,
		userID,
	).Scan(&p.Email, &p.SMS, &p.Slack, &p.Webhook, &p.PhoneNumber, &p.SlackWebhook, &p.CustomWebhook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Preferences{UserID: userID, Email: true}, nil
		}
		return Preferences{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	return p, nil
}

func (r *Repository) UpsertPreferences(ctx context.Context, p Preferences) error {
	const op string = "repo.notification.upsert_preferences"

	_, err := r.pool.Exec(ctx,
		`INSERT INTO notification_preferences (user_id, email, sms, slack, webhook, phone_number, slack_webhook, custom_webhook)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		 ON CONFLICT (user_id) DO UPDATE SET
		   email = EXCLUDED.email,
		   sms = EXCLUDED.sms,
		   slack = EXCLUDED.slack,
		   webhook = EXCLUDED.webhook,
		   phone_number = EXCLUDED.phone_number,
		   slack_webhook = EXCLUDED.slack_webhook,
		   custom_webhook = EXCLUDED.custom_webhook`,
		p.UserID, p.Email, p.SMS, p.Slack, p.Webhook, p.PhoneNumber, p.SlackWebhook, p.CustomWebhook,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	return nil
}
