// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

// generatedCodeRepository is the SQL implementation of
// [GeneratedCodeRepository] over the "generated_codes" table.
//
// Validation outcomes are written with optimistic locking: the UPDATE
// matches both id and the version the caller read, and bumps the version.
type generatedCodeRepository struct {
	*DB
	logger *logger.Logger
}

// NewGeneratedCodeRepository constructs a [GeneratedCodeRepository].
func NewGeneratedCodeRepository(db *DB, logger *logger.Logger) GeneratedCodeRepository {
	logger.Debug().Msg("creating generated code repository")
	return &generatedCodeRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *generatedCodeRepository) CreateGeneratedCode(ctx context.Context, code models.GeneratedCode) (models.GeneratedCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateGeneratedCodeQuery(r.builder, code)
	if err != nil {
		return models.GeneratedCode{}, wrapBuildErr(err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&code.ID); err != nil {
		log.Err(err).
			Str("func", "*generatedCodeRepository.CreateGeneratedCode").
			Int64("user_id", code.UserID).
			Msg("error inserting generated code")
		return models.GeneratedCode{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return code, nil
}

// GetGeneratedCode returns [ErrGeneratedCodeNotFound] when no row matches.
func (r *generatedCodeRepository) GetGeneratedCode(ctx context.Context, id int64) (models.GeneratedCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetGeneratedCodeQuery(r.builder, id)
	if err != nil {
		return models.GeneratedCode{}, wrapBuildErr(err)
	}

	code, err := scanGeneratedCode(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.GeneratedCode{}, ErrGeneratedCodeNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*generatedCodeRepository.GetGeneratedCode").Int64("code_id", id).Msg("error scanning generated code")
		return models.GeneratedCode{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return code, nil
}

func (r *generatedCodeRepository) ListUserGeneratedCodes(ctx context.Context, userID int64, page models.Page) ([]models.GeneratedCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUserGeneratedCodesQuery(r.builder, userID, page)
	if err != nil {
		return nil, wrapBuildErr(err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*generatedCodeRepository.ListUserGeneratedCodes").Int64("user_id", userID).Msg("error listing generated codes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	codes := make([]models.GeneratedCode, 0)
	for rows.Next() {
		code, scanErr := scanGeneratedCode(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		codes = append(codes, code)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return codes, nil
}

// UpdateValidation performs the compare-and-swap write. When no row matches
// it tells a missing row ([ErrGeneratedCodeNotFound]) from a moved version
// ([ErrVersionConflict]).
func (r *generatedCodeRepository) UpdateValidation(ctx context.Context, update models.ValidationUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateValidationQuery(r.builder, update)
	if err != nil {
		return 0, wrapBuildErr(err)
	}

	res, err := r.execRetryOnce(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*generatedCodeRepository.UpdateValidation").
			Int64("code_id", update.CodeID).
			Msg("error writing validation outcome")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		found, existsErr := r.exists(ctx, "generated_codes", update.CodeID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !found {
			return 0, ErrGeneratedCodeNotFound
		}
		return 0, ErrVersionConflict
	}

	return update.ExpectedVersion + 1, nil
}

func (r *generatedCodeRepository) UserStats(ctx context.Context, userID int64) (models.UserStats, error) {
	query, args, err := buildUserStatsQuery(r.builder, userID)
	if err != nil {
		return models.UserStats{}, wrapBuildErr(err)
	}

	var stats models.UserStats
	if err = r.QueryRowContext(ctx, query, args...).Scan(&stats.TotalGenerations, &stats.TotalLines); err != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}

func scanGeneratedCode(row rowScanner) (models.GeneratedCode, error) {
	var g models.GeneratedCode
	err := row.Scan(
		&g.ID,
		&g.Requirements,
		&g.GeneratedCode,
		&g.Language,
		&g.Framework,
		&g.LinesOfCode,
		&g.Status,
		&g.ValidationErrors,
		&g.OptimizationSuggestions,
		&g.UserID,
		&g.ProjectID,
		&g.TemplateID,
		&g.Version,
		&g.CreatedAt,
	)
	return g, err
}
