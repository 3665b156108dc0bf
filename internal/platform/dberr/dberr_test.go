// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/dberr"
)

/*
TestWrap_Classification covers every branch of the SQLSTATE mapping.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeNotFound},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "review_rating_check"}, apperr.CodeValidation},
		{"other_pg", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, apperr.CodeInternal},
		{"plain", errors.New("connection reset"), apperr.CodeInternal},
		{"already_app_error", apperr.Forbidden("no"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "test"), tt.code))
		})
	}
}

/*
TestWrap_Nil verifies nil passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrapAs_DomainNotFound verifies the domain message replaces the generic one.
*/
func TestWrapAs_DomainNotFound(t *testing.T) {
	domain := apperr.NotFound("Coleção não encontrada")

	err := dberr.WrapAs(pgx.ErrNoRows, "get_collection", domain)
	assert.Equal(t, domain, err)

	err = dberr.WrapAs(errors.New("boom"), "get_collection", domain)
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}
