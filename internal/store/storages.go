package store

import (
	"github.com/MKhiriev/go-code-gen/internal/logger"
)

// Storages aggregates every repository over one database handle.
type Storages struct {
	UserRepository          UserRepository
	ProjectRepository       ProjectRepository
	TemplateRepository      TemplateRepository
	GeneratedCodeRepository GeneratedCodeRepository
	StatsRepository         StatsRepository
}

// NewStorages builds all repositories on db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:          NewUserRepository(db, log),
		ProjectRepository:       NewProjectRepository(db, log),
		TemplateRepository:      NewTemplateRepository(db, log),
		GeneratedCodeRepository: NewGeneratedCodeRepository(db, log),
		StatsRepository:         NewStatsRepository(db, log),
	}
}
