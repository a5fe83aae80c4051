package models

import "time"

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	ID            int64     `json:"id"`
	Requirements  string    `json:"requirements"`
	GeneratedCode string    `json:"generated_code"`
	Language      string    `json:"language"`
	Framework     string    `json:"framework"`
	LinesOfCode   int64     `json:"lines_of_code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewGenerateResponse projects a stored record onto the response shape.
func NewGenerateResponse(g GeneratedCode) GenerateResponse {
	return GenerateResponse{
		ID:            g.ID,
		Requirements:  g.Requirements,
		GeneratedCode: g.GeneratedCode,
		Language:      g.Language,
		Framework:     g.Framework,
		LinesOfCode:   g.LinesOfCode,
		Status:        g.Status,
		CreatedAt:     g.CreatedAt,
	}
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Stats is returned by GET /api/stats.
type Stats struct {
	TotalProjects     int64 `json:"total_projects"`
	CompletedProjects int64 `json:"completed_projects"`
	TotalLinesOfCode  int64 `json:"total_lines_of_code"`
	ActiveProjects    int64 `json:"active_projects"`
	TotalTemplates    int64 `json:"total_templates"`
	TotalUsers        int64 `json:"total_users"`
}

// UserStats is returned by GET /api/users/me/stats.
type UserStats struct {
	TotalGenerations int64 `json:"total_generations"`
	TotalLines       int64 `json:"total_lines"`
}

// VersionInfo is returned by GET /api/version/build.
type VersionInfo struct {
	Version string       `json:"version"`
	Build   AppBuildInfo `json:"build"`
}
