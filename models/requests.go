package models

// Request defaults for generation and listing.
const (
	DefaultLanguage  = "typescript"
	DefaultFramework = "react"
	DefaultPageLimit = 100
)

// Page is an offset/limit window. Limit has no upper bound.
type Page struct {
	Skip  int
	Limit int
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of POST /api/user/update.
// Optional fields left nil keep their stored value.
type UpdateProfileRequest struct {
	FullName  *string    `json:"full_name,omitempty"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	Skills    StringList `json:"skills"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Requirements string `json:"requirements"`
	Language     string `json:"language"`
	Framework    string `json:"framework"`
	ProjectID    *int64 `json:"project_id,omitempty"`
	TemplateID   *int64 `json:"template_id,omitempty"`
}

// ApplyDefaults fills language and framework when omitted.
func (r *GenerateRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Framework == "" {
		r.Framework = DefaultFramework
	}
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Language    string `json:"language"`
	Framework   string `json:"framework"`
}
