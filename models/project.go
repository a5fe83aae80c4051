package models

import "time"

// Project statuses counted by the stats endpoint.
const (
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
)

// Project groups generation work of one owner.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Language    string    `json:"language"`
	Framework   string    `json:"framework"`
	LinesOfCode int64     `json:"lines_of_code"`
	FilesCount  int64     `json:"files_count"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}
