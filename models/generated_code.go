// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Generation record statuses. A record moves from generated to exactly one
// of the validation outcomes.
const (
	StatusGenerated = "generated"
	StatusValidated = "validated"
	StatusError     = "error"
)

// GeneratedCode is the stored result of one generation request including its
// eventual validation outcome.
//
// Version starts at zero and is bumped by every validation write; writers
// compare it to guard against concurrent updates.
type GeneratedCode struct {
	ID                      int64      `json:"id"`
	Requirements            string     `json:"requirements"`
	GeneratedCode           string     `json:"generated_code"`
	Language                string     `json:"language"`
	Framework               string     `json:"framework"`
	LinesOfCode             int64      `json:"lines_of_code"`
	Status                  string     `json:"status"`
	ValidationErrors        StringList `json:"validation_errors"`
	OptimizationSuggestions StringList `json:"optimization_suggestions"`
	UserID                  int64      `json:"user_id"`
	ProjectID               *int64     `json:"project_id"`
	TemplateID              *int64     `json:"template_id"`
	Version                 int64      `json:"-"`
	CreatedAt               time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the GeneratedCode model.
func (g GeneratedCode) TableName() string {
	return "generated_codes"
}

// ValidationUpdate is a compare-and-swap write of a validation outcome.
type ValidationUpdate struct {
	CodeID          int64
	ExpectedVersion int64
	Status          string
	Errors          StringList
	Suggestions     StringList
}
