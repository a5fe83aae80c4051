// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updateValidationSQL = `UPDATE generated_codes SET status = \$1, validation_errors = \$2, ` +
	`optimization_suggestions = \$3, version = version \+ 1 WHERE id = \$4 AND version = \$5`

func TestUpdateValidation(t *testing.T) {
	update := models.ValidationUpdate{
		CodeID:          7,
		ExpectedVersion: 0,
		Status:          models.StatusValidated,
		Suggestions:     models.StringList{"Consider adding more comments for better code documentation"},
	}

	tests := []struct {
		name        string
		setup       func(mock sqlmock.Sqlmock)
		wantVersion int64
		wantErr     error
	}{
		{
			name: "version matches",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WithArgs(models.StatusValidated, nil,
						`["Consider adding more comments for better code documentation"]`,
						int64(7), int64(0)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantVersion: 1,
		},
		{
			name: "version moved",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM generated_codes WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			},
			wantErr: ErrVersionConflict,
		},
		{
			name: "row deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM generated_codes`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			wantErr: ErrGeneratedCodeNotFound,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "serialization failure is retried once",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
				mock.ExpectExec(updateValidationSQL).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantVersion: 1,
		},
		{
			name: "second transient failure is returned",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateValidationSQL).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
				mock.ExpectExec(updateValidationSQL).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewGeneratedCodeRepository(db, logger.Nop())
			tt.setup(mock)

			version, err := repo.UpdateValidation(context.Background(), update)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantVersion, version)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetGeneratedCode_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewGeneratedCodeRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT id, requirements").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(generatedCodeColumns))

	_, err := repo.GetGeneratedCode(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGeneratedCodeNotFound)
}

func TestUserStats(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewGeneratedCodeRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 42))

	stats, err := repo.UserStats(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{TotalGenerations: 3, TotalLines: 42}, stats)
}
