package store

import (
	"context"

	"github.com/MKhiriev/go-code-gen/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with its id. Unique violations
	// map to ErrUsernameAlreadyExists or ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateProfile rewrites the mutable profile columns of user.ID.
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	// FirstUserID returns the lowest user id; ok is false on an empty table.
	FirstUserID(ctx context.Context) (id int64, ok bool, err error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	ListProjects(ctx context.Context, page models.Page) ([]models.Project, error)
	ProjectExists(ctx context.Context, id int64) (bool, error)
}

// TemplateRepository persists the template library.
type TemplateRepository interface {
	// ListTemplates returns public templates matching every non-empty filter
	// field, ordered by id.
	ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error)
	TemplateExists(ctx context.Context, id int64) (bool, error)
	CountTemplates(ctx context.Context) (int64, error)
	// CreateTemplates inserts all templates in one transaction.
	CreateTemplates(ctx context.Context, templates []models.Template) error
}

// GeneratedCodeRepository persists generation records.
type GeneratedCodeRepository interface {
	CreateGeneratedCode(ctx context.Context, code models.GeneratedCode) (models.GeneratedCode, error)
	GetGeneratedCode(ctx context.Context, id int64) (models.GeneratedCode, error)
	// ListUserGeneratedCodes returns the records of userID, newest first.
	ListUserGeneratedCodes(ctx context.Context, userID int64, page models.Page) ([]models.GeneratedCode, error)
	// UpdateValidation writes a validation outcome only when the row still
	// has update.ExpectedVersion and returns the new version.
	UpdateValidation(ctx context.Context, update models.ValidationUpdate) (int64, error)
	UserStats(ctx context.Context, userID int64) (models.UserStats, error)
}

// StatsRepository computes dashboard aggregates.
type StatsRepository interface {
	GetStats(ctx context.Context) (models.Stats, error)
}
