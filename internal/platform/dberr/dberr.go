// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies low-level PostgreSQL errors into [apperr.AppError] kinds
// so stores never leak driver errors to the HTTP layer.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist and the store
	// has no more specific message to offer.
	ErrNotFound = apperr.NotFound("Recurso não encontrado")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = apperr.Conflict("Registro já existe")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// # Mapping
//   - pgx.ErrNoRows            -> NOT_FOUND
//   - 23505 unique_violation   -> CONFLICT
//   - 23503 foreign_key        -> NOT_FOUND (a referenced row is missing)
//   - 23514 check_violation    -> VALIDATION_ERROR
//   - anything else            -> INTERNAL_ERROR (cause kept for logs)
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// AppErrors raised inside a transaction callback are already classified.
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicate
		case pgerrcode.ForeignKeyViolation:
			return ErrNotFound
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Valor fora do intervalo permitido", apperr.FieldError{
				Field:   apperr.RootField,
				Message: pgErr.ConstraintName,
			})
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapAs behaves like [Wrap] but substitutes a domain-specific error for NOT_FOUND.
func WrapAs(err error, action string, notFound *apperr.AppError) error {
	wrapped := Wrap(err, action)
	if wrapped == ErrNotFound && notFound != nil {
		return notFound
	}
	return wrapped
}
