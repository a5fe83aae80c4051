package service

import (
	"github.com/MKhiriev/go-code-gen/internal/config"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

// Services aggregates the application services handed to the transports.
type Services struct {
	AuthService       AuthService
	UserService       UserService
	TemplateService   TemplateService
	ProjectService    ProjectService
	GenerationService GenerationService
	ValidationService ValidationService
	StatsService      StatsService
	AppInfoService    AppInfoService
}

// Dependencies are the collaborators shared by the services. Publisher may be
// nil, which disables deferred validation.
type Dependencies struct {
	Storages  *store.Storages
	Generator CodeGenerator
	Scanner   CodeScanner
	Publisher TaskPublisher
	Build     models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, deps.Build, logger)
	if err != nil {
		return nil, err
	}

	storages := deps.Storages
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService:       NewUserService(storages.UserRepository, storages.GeneratedCodeRepository, logger),
		TemplateService:   NewTemplateService(storages.TemplateRepository, storages.UserRepository, logger),
		ProjectService:    NewProjectService(storages.ProjectRepository, logger),
		GenerationService: NewGenerationService(storages, deps.Generator, deps.Publisher, logger),
		ValidationService: NewValidationService(storages.GeneratedCodeRepository, deps.Scanner, logger),
		StatsService:      NewStatsService(storages.StatsRepository, logger),
		AppInfoService:    appInfoService,
	}, nil
}
