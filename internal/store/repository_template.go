package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

type templateRepository struct {
	*DB
	logger *logger.Logger
}

// NewTemplateRepository constructs a [TemplateRepository] backed by db.
func NewTemplateRepository(db *DB, logger *logger.Logger) TemplateRepository {
	logger.Debug().Msg("creating template repository")
	return &templateRepository{
		DB:     db,
		logger: logger,
	}
}

// ListTemplates returns public templates matching filter. Tags are decoded
// from their JSON column by [models.StringList].
func (r *templateRepository) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTemplatesQuery(r.builder, filter)
	if err != nil {
		return nil, wrapBuildErr(err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("error listing templates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	templates := make([]models.Template, 0)
	for rows.Next() {
		var t models.Template
		if err = rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.Language,
			&t.Category,
			&t.Framework,
			&t.Code,
			&t.Downloads,
			&t.Rating,
			&t.Tags,
			&t.IsPublic,
			&t.CreatorID,
			&t.CreatedAt,
		); err != nil {
			log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("error scanning template")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return templates, nil
}

func (r *templateRepository) TemplateExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "templates", id)
}

// CountTemplates counts all templates, public or not.
func (r *templateRepository) CountTemplates(ctx context.Context) (int64, error) {
	query, args, err := buildCountQuery(r.builder, "templates", nil)
	if err != nil {
		return 0, wrapBuildErr(err)
	}

	var count int64
	if err = r.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *templateRepository) CreateTemplates(ctx context.Context, templates []models.Template) error {
	log := logger.FromContext(ctx)

	return r.InTx(ctx, func(tx *sql.Tx) error {
		for i, t := range templates {
			query, args, err := buildInsertTemplateQuery(r.builder, t)
			if err != nil {
				return wrapBuildErr(err)
			}

			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				log.Err(err).Str("func", "*templateRepository.CreateTemplates").Int("index", i).Msg("error inserting template")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}
