package models

// ValidationReport is the outcome of a heuristic scan.
// IsValid holds exactly when Errors is empty.
type ValidationReport struct {
	IsValid     bool       `json:"is_valid"`
	Errors      StringList `json:"errors"`
	Warnings    StringList `json:"warnings"`
	Suggestions StringList `json:"suggestions"`
}

// Status maps the report onto a generation record status.
func (r ValidationReport) Status() string {
	if r.IsValid {
		return StatusValidated
	}
	return StatusError
}

// ValidationTask is the queued message that schedules a deferred validation.
// It carries the row id and the version the producer committed; a consumer
// only writes when the row still has that version.
type ValidationTask struct {
	CodeID          int64 `json:"code_id"`
	ExpectedVersion int64 `json:"expected_version"`
}
