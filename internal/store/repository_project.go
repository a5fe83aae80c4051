package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

type projectRepository struct {
	*DB
	logger *logger.Logger
}

// NewProjectRepository constructs a [ProjectRepository] backed by db.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateProjectQuery(r.builder, project)
	if err != nil {
		return models.Project{}, wrapBuildErr(err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&project.ID); err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProject").Int64("owner_id", project.OwnerID).Msg("error inserting project")
		return models.Project{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return project, nil
}

func (r *projectRepository) ListProjects(ctx context.Context, page models.Page) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProjectsQuery(r.builder, page)
	if err != nil {
		return nil, wrapBuildErr(err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.ListProjects").Msg("error listing projects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err = rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Status,
			&p.Language,
			&p.Framework,
			&p.LinesOfCode,
			&p.FilesCount,
			&p.OwnerID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projects, nil
}

func (r *projectRepository) ProjectExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "projects", id)
}

func (db *DB) exists(ctx context.Context, table string, id int64) (bool, error) {
	query, args, err := buildExistsQuery(db.builder, table, id)
	if err != nil {
		return false, wrapBuildErr(err)
	}

	var count int64
	if err = db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}
