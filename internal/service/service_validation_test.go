// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-code-gen/internal/codecheck"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.GeneratedCodeRepository
// ─────────────────────────────────────────────

type mockGeneratedCodeRepository struct {
	createFn    func(ctx context.Context, code models.GeneratedCode) (models.GeneratedCode, error)
	getFn       func(ctx context.Context, id int64) (models.GeneratedCode, error)
	listFn      func(ctx context.Context, userID int64, page models.Page) ([]models.GeneratedCode, error)
	updateFn    func(ctx context.Context, update models.ValidationUpdate) (int64, error)
	userStatsFn func(ctx context.Context, userID int64) (models.UserStats, error)
}

func (m *mockGeneratedCodeRepository) CreateGeneratedCode(ctx context.Context, code models.GeneratedCode) (models.GeneratedCode, error) {
	if m.createFn != nil {
		return m.createFn(ctx, code)
	}
	return code, nil
}

func (m *mockGeneratedCodeRepository) GetGeneratedCode(ctx context.Context, id int64) (models.GeneratedCode, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.GeneratedCode{}, store.ErrGeneratedCodeNotFound
}

func (m *mockGeneratedCodeRepository) ListUserGeneratedCodes(ctx context.Context, userID int64, page models.Page) ([]models.GeneratedCode, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, page)
	}
	return nil, nil
}

func (m *mockGeneratedCodeRepository) UpdateValidation(ctx context.Context, update models.ValidationUpdate) (int64, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return update.ExpectedVersion + 1, nil
}

func (m *mockGeneratedCodeRepository) UserStats(ctx context.Context, userID int64) (models.UserStats, error) {
	if m.userStatsFn != nil {
		return m.userStatsFn(ctx, userID)
	}
	return models.UserStats{}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const invalidPython = "def broken(:\n    return 1\n"

func pythonRecord(version int64) models.GeneratedCode {
	return models.GeneratedCode{
		ID:            11,
		GeneratedCode: invalidPython,
		Language:      "python",
		Status:        models.StatusGenerated,
		Version:       version,
	}
}

func newTestValidationService(repo store.GeneratedCodeRepository) ValidationService {
	return NewValidationService(repo, codecheck.NewScanner(), logger.Nop())
}

// ─────────────────────────────────────────────
// Validate
// ─────────────────────────────────────────────

func TestValidate_WritesOutcomeWithReadVersion(t *testing.T) {
	var got models.ValidationUpdate
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(4), nil },
		updateFn: func(_ context.Context, u models.ValidationUpdate) (int64, error) {
			got = u
			return 5, nil
		},
	}

	report, err := newTestValidationService(repo).Validate(context.Background(), 11)
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	assert.Equal(t, int64(11), got.CodeID)
	assert.Equal(t, int64(4), got.ExpectedVersion)
	assert.Equal(t, models.StatusError, got.Status)
	assert.Equal(t, report.Errors, got.Errors)
	assert.Equal(t, report.Suggestions, got.Suggestions)
}

func TestValidate_SameTextOtherLanguageIsValid(t *testing.T) {
	var status string
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) {
			rec := pythonRecord(0)
			rec.Language = "javascript"
			return rec, nil
		},
		updateFn: func(_ context.Context, u models.ValidationUpdate) (int64, error) {
			status = u.Status
			return 1, nil
		},
	}

	report, err := newTestValidationService(repo).Validate(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, report.IsValid)
	assert.Equal(t, models.StatusValidated, status)
}

func TestValidate_RetriesOnceAfterConflict(t *testing.T) {
	reads, writes := 0, 0
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) {
			reads++
			return pythonRecord(int64(reads)), nil
		},
		updateFn: func(_ context.Context, u models.ValidationUpdate) (int64, error) {
			writes++
			if writes == 1 {
				return 0, store.ErrVersionConflict
			}
			assert.Equal(t, int64(2), u.ExpectedVersion, "retry uses the re-read version")
			return 3, nil
		},
	}

	_, err := newTestValidationService(repo).Validate(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, 2, reads)
	assert.Equal(t, 2, writes)
}

func TestValidate_SecondConflictReturnsReport(t *testing.T) {
	writes := 0
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(0), nil },
		updateFn: func(context.Context, models.ValidationUpdate) (int64, error) {
			writes++
			return 0, store.ErrVersionConflict
		},
	}

	report, err := newTestValidationService(repo).Validate(context.Background(), 11)
	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.Equal(t, onDemandAttempts, writes)
}

func TestValidate_NotFound(t *testing.T) {
	_, err := newTestValidationService(&mockGeneratedCodeRepository{}).Validate(context.Background(), 404)

	assert.ErrorIs(t, err, store.ErrGeneratedCodeNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestValidate_WriteFailure(t *testing.T) {
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(0), nil },
		updateFn: func(context.Context, models.ValidationUpdate) (int64, error) {
			return 0, store.ErrExecutingStatement
		},
	}

	_, err := newTestValidationService(repo).Validate(context.Background(), 11)
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
	assert.Equal(t, KindInternal, KindOf(err))
}

// ─────────────────────────────────────────────
// ProcessTask
// ─────────────────────────────────────────────

func TestProcessTask_WritesWhenVersionMatches(t *testing.T) {
	var got *models.ValidationUpdate
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(0), nil },
		updateFn: func(_ context.Context, u models.ValidationUpdate) (int64, error) {
			got = &u
			return 1, nil
		},
	}

	err := newTestValidationService(repo).ProcessTask(context.Background(), models.ValidationTask{CodeID: 11, ExpectedVersion: 0})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusError, got.Status)
	assert.NotEmpty(t, got.Errors)
}

func TestProcessTask_SkipsStaleVersion(t *testing.T) {
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(2), nil },
		updateFn: func(context.Context, models.ValidationUpdate) (int64, error) {
			t.Fatal("stale task must not write")
			return 0, nil
		},
	}

	err := newTestValidationService(repo).ProcessTask(context.Background(), models.ValidationTask{CodeID: 11, ExpectedVersion: 0})
	assert.NoError(t, err)
}

func TestProcessTask_LostRaceIsDropped(t *testing.T) {
	repo := &mockGeneratedCodeRepository{
		getFn: func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(0), nil },
		updateFn: func(context.Context, models.ValidationUpdate) (int64, error) {
			return 0, store.ErrVersionConflict
		},
	}

	err := newTestValidationService(repo).ProcessTask(context.Background(), models.ValidationTask{CodeID: 11})
	assert.NoError(t, err)
}

func TestProcessTask_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("disk I/O error")

	t.Run("read", func(t *testing.T) {
		repo := &mockGeneratedCodeRepository{
			getFn: func(context.Context, int64) (models.GeneratedCode, error) { return models.GeneratedCode{}, boom },
		}
		err := newTestValidationService(repo).ProcessTask(context.Background(), models.ValidationTask{CodeID: 11})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("write", func(t *testing.T) {
		repo := &mockGeneratedCodeRepository{
			getFn:    func(context.Context, int64) (models.GeneratedCode, error) { return pythonRecord(0), nil },
			updateFn: func(context.Context, models.ValidationUpdate) (int64, error) { return 0, boom },
		}
		err := newTestValidationService(repo).ProcessTask(context.Background(), models.ValidationTask{CodeID: 11})
		assert.ErrorIs(t, err, boom)
	})
}
