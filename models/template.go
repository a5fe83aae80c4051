package models

import "time"

// Template is a reusable snippet in the shared library.
// Tags are stored as a JSON array in a text column.
type Template struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Category    string     `json:"category"`
	Framework   string     `json:"framework"`
	Code        string     `json:"code"`
	Downloads   int64      `json:"downloads"`
	Rating      float64    `json:"rating"`
	Tags        StringList `json:"tags"`
	IsPublic    bool       `json:"is_public"`
	CreatorID   *int64     `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Template model.
func (t Template) TableName() string {
	return "templates"
}

// TemplateFilter narrows template listings. Empty fields do not filter.
type TemplateFilter struct {
	Language  string
	Category  string
	Framework string
	Page
}
