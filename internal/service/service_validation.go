// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/metrics"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

// onDemandAttempts bounds the read-scan-write cycles of Validate.
const onDemandAttempts = 2

type validationService struct {
	generatedCodeRepository store.GeneratedCodeRepository
	scanner                 CodeScanner

	logger *logger.Logger
}

// NewValidationService constructs a ValidationService.
func NewValidationService(generatedCodeRepository store.GeneratedCodeRepository, scanner CodeScanner, logger *logger.Logger) ValidationService {
	return &validationService{
		generatedCodeRepository: generatedCodeRepository,
		scanner:                 scanner,
		logger:                  logger,
	}
}

// Validate scans record codeID and writes the outcome guarded by the version
// it read. On a version conflict the record is re-read and the cycle is
// repeated once; a second conflict means another writer already stored an
// outcome for the same text, so the report is returned as is.
func (s *validationService) Validate(ctx context.Context, codeID int64) (models.ValidationReport, error) {
	log := logger.FromContext(ctx).With().Int64("code_id", codeID).Logger()

	var report models.ValidationReport
	for attempt := 1; attempt <= onDemandAttempts; attempt++ {
		code, err := s.generatedCodeRepository.GetGeneratedCode(ctx, codeID)
		if err != nil {
			return models.ValidationReport{}, fmt.Errorf("loading generated code failed: %w", err)
		}

		report = s.scanner.Scan(ctx, code.GeneratedCode, code.Language)

		_, err = s.write(ctx, code, report, metrics.TriggerOnDemand)
		if err == nil {
			return report, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			log.Err(err).Msg("writing validation outcome failed")
			return models.ValidationReport{}, fmt.Errorf("writing validation outcome failed: %w", err)
		}

		log.Warn().Int("attempt", attempt).Int64("version", code.Version).Msg("validation write lost the version race")
	}

	return report, nil
}

// ProcessTask validates the record named by task unless it moved past
// task.ExpectedVersion. Stale tasks and lost version races are dropped
// without error.
func (s *validationService) ProcessTask(ctx context.Context, task models.ValidationTask) error {
	log := logger.FromContext(ctx).With().
		Int64("code_id", task.CodeID).
		Int64("expected_version", task.ExpectedVersion).
		Logger()

	code, err := s.generatedCodeRepository.GetGeneratedCode(ctx, task.CodeID)
	if err != nil {
		return fmt.Errorf("loading generated code failed: %w", err)
	}

	if code.Version != task.ExpectedVersion {
		metrics.ValidationConflictsTotal.WithLabelValues(metrics.TriggerDeferred).Inc()
		log.Info().Int64("version", code.Version).Msg("stale validation task skipped")
		return nil
	}

	report := s.scanner.Scan(ctx, code.GeneratedCode, code.Language)

	version, err := s.write(ctx, code, report, metrics.TriggerDeferred)
	if errors.Is(err, store.ErrVersionConflict) {
		log.Info().Msg("validation task lost the version race")
		return nil
	}
	if err != nil {
		return fmt.Errorf("writing validation outcome failed: %w", err)
	}

	log.Debug().Int64("version", version).Str("status", report.Status()).Msg("deferred validation stored")
	return nil
}

func (s *validationService) write(ctx context.Context, code models.GeneratedCode, report models.ValidationReport, trigger string) (int64, error) {
	version, err := s.generatedCodeRepository.UpdateValidation(ctx, models.ValidationUpdate{
		CodeID:          code.ID,
		ExpectedVersion: code.Version,
		Status:          report.Status(),
		Errors:          report.Errors,
		Suggestions:     report.Suggestions,
	})
	if errors.Is(err, store.ErrVersionConflict) {
		metrics.ValidationConflictsTotal.WithLabelValues(trigger).Inc()
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	metrics.ValidationsTotal.WithLabelValues(trigger, report.Status()).Inc()
	return version, nil
}
