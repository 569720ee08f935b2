package utils

import (
	"context"
	"errors"

	"pingdeck/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// WrapRepoError classifies a pgx error into an apperror. Pass
// notFoundPossible=true for reads where pgx.ErrNoRows is an expected outcome.
func WrapRepoError(op string, err error, notFoundPossible bool, log *zerolog.Logger) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &apperror.Error{
			Kind:    apperror.RequestTimeout,
			Op:      op,
			Message: "request cancelled or timed out",
		}
	}

	if notFoundPossible && errors.Is(err, pgx.ErrNoRows) {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "resource not found",
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return &apperror.Error{
				Kind:    apperror.AlreadyExists,
				Op:      op,
				Message: "resource already exists",
			}
		}

		log.Error().
			Str("op", op).
			Str("pg_code", pgErr.Code).
			Str("pg_constraint", pgErr.ConstraintName).
			Str("pg_table", pgErr.TableName).
			Err(err).
			Msg("postgres database error")

		return &apperror.Error{
			Kind:    apperror.DatabaseErr,
			Op:      op,
			Message: "internal server error",
			Err:     err,
		}
	}

	return &apperror.Error{
		Kind:    apperror.Internal,
		Op:      op,
		Message: "internal server error",
		Err:     err,
	}
}
