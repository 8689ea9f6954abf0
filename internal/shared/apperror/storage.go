package apperror

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// FromStorage translates storage-layer errors into the taxonomy. AppErrors pass through,
// unknown errors are wrapped as InternalError so their cause stays in logs only.
func FromStorage(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(err, CodeNotFound, ErrNotFound.Message, ErrNotFound.HTTPStatus)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(err, CodeConflict, ErrConflict.Message, ErrConflict.HTTPStatus)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(err, CodeBadRequest, "Referenced resource does not exist", ErrBadRequest.HTTPStatus)
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, CodeServiceUnavailable, ErrServiceUnavailable.Message, ErrServiceUnavailable.HTTPStatus)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Wrap(err, CodeConflict, ErrConflict.Message, ErrConflict.HTTPStatus)
		case pgForeignKeyViolation:
			return Wrap(err, CodeBadRequest, "Referenced resource does not exist", ErrBadRequest.HTTPStatus)
		case pgCheckViolation, pgNotNullViolation:
			return Wrap(err, CodeBadRequest, "Value violates a data constraint", ErrBadRequest.HTTPStatus)
		}
	}

	return Wrap(err, CodeInternalError, ErrInternal.Message, ErrInternal.HTTPStatus)
}

// IsUniqueViolation reports a duplicate key error, optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return constraint == "" || pgErr.ConstraintName == constraint
	}
	return constraint == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}
