package service

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
)

//go:embed demo/*
var demoFS embed.FS

type demoTemplate struct {
	file     string
	template models.Template
}

var demoTemplates = []demoTemplate{
	{
		file: "demo/items_controller.ts",
		template: models.Template{
			Name:        "REST API controller",
			Description: "Basic REST API controller with CRUD operations",
			Language:    "TypeScript",
			Category:    "backend",
			Framework:   "NextJS",
			Downloads:   1245,
			Rating:      4.8,
			Tags:        models.StringList{"TypeScript", "NextJS", "backend", "api", "crud"},
		},
	},
	{
		file: "demo/registration_form.tsx",
		template: models.Template{
			Name:        "Form with validation",
			Description: "React form component with full field validation",
			Language:    "TypeScript",
			Category:    "frontend",
			Framework:   "React",
			Downloads:   2103,
			Rating:      4.9,
			Tags:        models.StringList{"TypeScript", "React", "frontend", "form", "validation"},
		},
	},
	{
		file: "demo/jwt_middleware.js",
		template: models.Template{
			Name:        "JWT authentication",
			Description: "Express.js middleware that checks JWT tokens",
			Language:    "JavaScript",
			Category:    "auth",
			Framework:   "Express",
			Downloads:   1867,
			Rating:      4.8,
			Tags:        models.StringList{"JavaScript", "Express", "auth", "jwt", "security"},
		},
	},
}

type templateService struct {
	templateRepository store.TemplateRepository
	userRepository     store.UserRepository

	logger *logger.Logger
}

// NewTemplateService constructs a TemplateService.
func NewTemplateService(templateRepository store.TemplateRepository, userRepository store.UserRepository, logger *logger.Logger) TemplateService {
	return &templateService{
		templateRepository: templateRepository,
		userRepository:     userRepository,
		logger:             logger,
	}
}

// ListTemplates returns public templates matching filter.
func (s *templateService) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error) {
	if err := validatePage(ctx, filter.Page); err != nil {
		return nil, err
	}

	templates, err := s.templateRepository.ListTemplates(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Any("filter", filter).Msg("template listing failed")
		return nil, fmt.Errorf("template listing failed: %w", err)
	}

	return templates, nil
}

// SeedDemoTemplates inserts the demo library when the templates table is
// empty. Templates are attributed to the first registered user, if any.
func (s *templateService) SeedDemoTemplates(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	count, err := s.templateRepository.CountTemplates(ctx)
	if err != nil {
		return false, fmt.Errorf("counting templates failed: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("count", count).Msg("templates present, skipping demo seed")
		return false, nil
	}

	var creatorID *int64
	id, ok, err := s.userRepository.FirstUserID(ctx)
	if err != nil {
		return false, fmt.Errorf("looking up demo creator failed: %w", err)
	}
	if ok {
		creatorID = &id
	}

	templates, err := loadDemoTemplates(creatorID, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if err = s.templateRepository.CreateTemplates(ctx, templates); err != nil {
		log.Err(err).Msg("demo seed failed")
		return false, fmt.Errorf("demo seed failed: %w", err)
	}

	log.Info().Int("count", len(templates)).Msg("demo templates created")
	return true, nil
}

func loadDemoTemplates(creatorID *int64, now time.Time) ([]models.Template, error) {
	templates := make([]models.Template, 0, len(demoTemplates))
	for _, d := range demoTemplates {
		code, err := demoFS.ReadFile(d.file)
		if err != nil {
			return nil, fmt.Errorf("reading demo template %s: %w", d.file, err)
		}

		t := d.template
		t.Code = string(code)
		t.Tags = t.Tags.Clone()
		t.IsPublic = true
		t.CreatorID = creatorID
		t.CreatedAt = now
		templates = append(templates, t)
	}

	return templates, nil
}
