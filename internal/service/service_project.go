package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

type projectService struct {
	projectRepository store.ProjectRepository

	logger *logger.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(projectRepository store.ProjectRepository, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		logger:            logger,
	}
}

// ListProjects returns a page of all projects ordered by id.
func (s *projectService) ListProjects(ctx context.Context, page models.Page) ([]models.Project, error) {
	if err := validatePage(ctx, page); err != nil {
		return nil, err
	}

	projects, err := s.projectRepository.ListProjects(ctx, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("project listing failed")
		return nil, fmt.Errorf("project listing failed: %w", err)
	}

	return projects, nil
}

// CreateProject stores a new project owned by owner. Missing language and
// status default to "typescript" and "in_progress".
func (s *projectService) CreateProject(ctx context.Context, owner models.User, req models.CreateProjectRequest) (models.Project, error) {
	log := logger.FromContext(ctx)

	if err := validateRequest(ctx, ErrInvalidDataProvided, req); err != nil {
		log.Error().Err(err).Int64("owner_id", owner.ID).Msg("project without name")
		return models.Project{}, err
	}
	name := strings.TrimSpace(req.Name)

	status := req.Status
	if status == "" {
		status = models.ProjectInProgress
	}
	language := req.Language
	if language == "" {
		language = models.DefaultLanguage
	}

	now := time.Now().UTC()
	project, err := s.projectRepository.CreateProject(ctx, models.Project{
		Name:        name,
		Description: req.Description,
		Status:      status,
		Language:    language,
		Framework:   req.Framework,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Err(err).Int64("owner_id", owner.ID).Msg("project creation failed")
		return models.Project{}, fmt.Errorf("project creation failed: %w", err)
	}

	return project, nil
}
