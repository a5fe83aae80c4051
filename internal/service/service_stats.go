package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

type statsService struct {
	statsRepository store.StatsRepository

	logger *logger.Logger
}

func NewStatsService(statsRepository store.StatsRepository, logger *logger.Logger) StatsService {
	return &statsService{statsRepository: statsRepository, logger: logger}
}

func (s *statsService) GetStats(ctx context.Context) (models.Stats, error) {
	stats, err := s.statsRepository.GetStats(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("stats query failed")
		return models.Stats{}, fmt.Errorf("stats query failed: %w", err)
	}

	return stats, nil
}
