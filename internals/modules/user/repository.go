package user

import (
	"context"

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

// CreateUser inserts the user and their FREE subscription in one
// transaction, so an account can never exist without a subscription row.
func (r *Repository) CreateUser(ctx context.Context, cmd CreateUserCmd, passwordHash string) (uuid.UUID, error) {
	const op string = "repo.user.create_user"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		cmd.Name, cmd.Email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO subscriptions (user_id, plan, status, start_date) VALUES ($1, 'FREE', 'ACTIVE', now())`,
		id,
	)
	if err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return id, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	const op string = "repo.user.get_by_email"

	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return User{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	const op string = "repo.user.get_by_id"

	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return User{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return u, nil
}

func (r *Repository) GetEmailByID(ctx context.Context, userID uuid.UUID) (string, error) {
	const op string = "repo.user.get_email_by_id"

	var email string
	err := r.pool.QueryRow(ctx,
		`SELECT email FROM users WHERE id = $1`,
		userID,
	).Scan(&email)
	if err != nil {
		return "", utils.WrapRepoError(op, err, true, r.logger)
	}

	return email, nil
}
