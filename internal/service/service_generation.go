// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/generator"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

type generationService struct {
	generatedCodeRepository store.GeneratedCodeRepository
	projectRepository       store.ProjectRepository
	templateRepository      store.TemplateRepository

	generator CodeGenerator
	publisher TaskPublisher

	logger *logger.Logger
}

// NewGenerationService constructs a GenerationService. A nil publisher
// disables deferred validation.
func NewGenerationService(storages *store.Storages, gen CodeGenerator, publisher TaskPublisher, logger *logger.Logger) GenerationService {
	return &generationService{
		generatedCodeRepository: storages.GeneratedCodeRepository,
		projectRepository:       storages.ProjectRepository,
		templateRepository:      storages.TemplateRepository,
		generator:               gen,
		publisher:               publisher,
		logger:                  logger,
	}
}

// Generate runs the generator, stores the record for owner and enqueues a
// validation task pinned to the stored version.
//
// The record is committed before the task is published; a publish failure
// is logged and leaves the record in status "generated". Once the generator
// returned, storing and publishing no longer follow ctx cancellation, so a
// caller deadline that cut the provider short still yields the fallback
// record.
func (s *generationService) Generate(ctx context.Context, owner models.User, req models.GenerateRequest) (models.GeneratedCode, error) {
	log := logger.FromContext(ctx)

	req.ApplyDefaults()
	if err := validateRequest(ctx, ErrRequirementsRequired, req); err != nil {
		return models.GeneratedCode{}, err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return models.GeneratedCode{}, err
	}

	result := s.generator.Generate(ctx, generator.Request{
		Requirements: req.Requirements,
		Language:     req.Language,
		Framework:    req.Framework,
	})

	persistCtx := context.WithoutCancel(ctx)
	saved, err := s.generatedCodeRepository.CreateGeneratedCode(persistCtx, models.GeneratedCode{
		Requirements:  req.Requirements,
		GeneratedCode: result.GeneratedCode,
		Language:      result.Language,
		Framework:     result.Framework,
		LinesOfCode:   result.LinesOfCode,
		Status:        result.Status,
		UserID:        owner.ID,
		ProjectID:     req.ProjectID,
		TemplateID:    req.TemplateID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Int64("user_id", owner.ID).Msg("saving generated code failed")
		return models.GeneratedCode{}, fmt.Errorf("saving generated code failed: %w", err)
	}

	log.Info().
		Int64("code_id", saved.ID).
		Str("language", saved.Language).
		Str("source", result.Source).
		Int64("lines", saved.LinesOfCode).
		Msg("code generated")

	s.scheduleValidation(persistCtx, saved)

	return saved, nil
}

func (s *generationService) checkReferences(ctx context.Context, req models.GenerateRequest) error {
	if req.ProjectID != nil {
		ok, err := s.projectRepository.ProjectExists(ctx, *req.ProjectID)
		if err != nil {
			return fmt.Errorf("project lookup failed: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrProjectNotFound, *req.ProjectID)
		}
	}

	if req.TemplateID != nil {
		ok, err := s.templateRepository.TemplateExists(ctx, *req.TemplateID)
		if err != nil {
			return fmt.Errorf("template lookup failed: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrTemplateNotFound, *req.TemplateID)
		}
	}

	return nil
}

func (s *generationService) scheduleValidation(ctx context.Context, code models.GeneratedCode) {
	if s.publisher == nil {
		return
	}

	task := models.ValidationTask{CodeID: code.ID, ExpectedVersion: code.Version}
	if err := s.publisher.Publish(ctx, task); err != nil {
		logger.FromContext(ctx).Err(err).Int64("code_id", code.ID).Msg("scheduling validation failed")
	}
}

// GetGeneratedCode returns record id. An authenticated viewer other than the
// owner gets ErrAccessDenied.
func (s *generationService) GetGeneratedCode(ctx context.Context, viewer *models.User, id int64) (models.GeneratedCode, error) {
	code, err := s.generatedCodeRepository.GetGeneratedCode(ctx, id)
	if err != nil {
		return models.GeneratedCode{}, fmt.Errorf("loading generated code failed: %w", err)
	}

	if viewer != nil && viewer.ID != code.UserID {
		logger.FromContext(ctx).Info().Int64("code_id", id).Int64("viewer_id", viewer.ID).Msg("foreign generated code requested")
		return models.GeneratedCode{}, ErrAccessDenied
	}

	return code, nil
}

// History returns the records of owner, newest first.
func (s *generationService) History(ctx context.Context, owner models.User, page models.Page) ([]models.GeneratedCode, error) {
	if err := validatePage(ctx, page); err != nil {
		return nil, err
	}

	codes, err := s.generatedCodeRepository.ListUserGeneratedCodes(ctx, owner.ID, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", owner.ID).Msg("history listing failed")
		return nil, fmt.Errorf("history listing failed: %w", err)
	}

	return codes, nil
}
