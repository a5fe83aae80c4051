package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/models"
)

type statsRepository struct {
	*DB
	logger *logger.Logger
}

// NewStatsRepository constructs a [StatsRepository] backed by db.
func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	logger.Debug().Msg("creating stats repository")
	return &statsRepository{
		DB:     db,
		logger: logger,
	}
}

// GetStats computes every dashboard aggregate in a single round trip.
func (r *statsRepository) GetStats(ctx context.Context) (models.Stats, error) {
	query, args, err := buildStatsQuery(r.builder)
	if err != nil {
		return models.Stats{}, wrapBuildErr(err)
	}

	var s models.Stats
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&s.TotalProjects,
		&s.CompletedProjects,
		&s.TotalLinesOfCode,
		&s.ActiveProjects,
		&s.TotalTemplates,
		&s.TotalUsers,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*statsRepository.GetStats").Msg("error computing stats")
		return models.Stats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s, nil
}
