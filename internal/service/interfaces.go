package service

import (
	"context"

	"github.com/MKhiriev/go-code-gen/internal/generator"
	"github.com/MKhiriev/go-code-gen/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns accounts and sessions.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Login returns the account for valid credentials of an active user.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// ResolveUser maps a raw session token onto its account. Every failure
	// is reported as ErrNotAuthenticated.
	ResolveUser(ctx context.Context, tokenString string) (models.User, error)
}

// UserService manages the profile of an authenticated account.
type UserService interface {
	UpdateProfile(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.User, error)
	UserStats(ctx context.Context, userID int64) (models.UserStats, error)
}

// TemplateService serves the template library.
type TemplateService interface {
	ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error)
	// SeedDemoTemplates inserts the demo library into an empty table and
	// reports whether anything was inserted.
	SeedDemoTemplates(ctx context.Context) (bool, error)
}

// ProjectService manages projects.
type ProjectService interface {
	ListProjects(ctx context.Context, page models.Page) ([]models.Project, error)
	CreateProject(ctx context.Context, owner models.User, req models.CreateProjectRequest) (models.Project, error)
}

// GenerationService produces and serves generation records.
type GenerationService interface {
	// Generate stores a new record for owner and schedules its validation.
	Generate(ctx context.Context, owner models.User, req models.GenerateRequest) (models.GeneratedCode, error)
	// GetGeneratedCode returns record id. A nil viewer is anonymous and may
	// read any record; an authenticated viewer only their own.
	GetGeneratedCode(ctx context.Context, viewer *models.User, id int64) (models.GeneratedCode, error)
	History(ctx context.Context, owner models.User, page models.Page) ([]models.GeneratedCode, error)
}

// ValidationService scans stored records and persists the outcome.
type ValidationService interface {
	// Validate scans record codeID now and returns the report.
	Validate(ctx context.Context, codeID int64) (models.ValidationReport, error)
	// ProcessTask runs a deferred validation. A record that moved past the
	// task version is skipped.
	ProcessTask(ctx context.Context, task models.ValidationTask) error
}

// StatsService computes dashboard counters.
type StatsService interface {
	GetStats(ctx context.Context) (models.Stats, error)
}

// AppInfoService exposes build and version data.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}

// TaskPublisher hands validation tasks to the worker queue.
type TaskPublisher interface {
	Publish(ctx context.Context, task models.ValidationTask) error
}

// CodeScanner runs the heuristic checks on a snippet.
type CodeScanner interface {
	Scan(ctx context.Context, code, language string) models.ValidationReport
}

// CodeGenerator produces a snippet for a request. It never fails.
type CodeGenerator interface {
	Generate(ctx context.Context, req generator.Request) generator.Result
}
