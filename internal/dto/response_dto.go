package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// PagedResponse is the list envelope used by the jobs and candidates
// listings: the page of data plus the unpaginated total.
type PagedResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// DraftSummary is a deserialized draft row: storage id, timestamp, and the
// document itself.
type DraftSummary struct {
	ID           uint               `json:"id"`
	JobID        uint               `json:"job_id"`
	LastModified time.Time          `json:"lastModified"`
	Assessment   AssessmentDocument `json:"assessment"`
}

// ResponseRecord is a candidate's stored answers for an assessment.
type ResponseRecord struct {
	ID           uint        `json:"id"`
	AssessmentID int64       `json:"assessment_id"`
	CandidateID  uint        `json:"candidate_id"`
	Responses    ResponseMap `json:"responses"`
	IsSubmitted  bool        `json:"isSubmitted"`
	LastModified time.Time   `json:"lastModified"`
}

// SubmissionResponse mirrors the stored submission row.
type SubmissionResponse struct {
	ID           uint      `json:"id"`
	JobID        uint      `json:"job_id"`
	CandidateID  uint      `json:"candidate_id"`
	AssessmentID int64     `json:"assessment_id,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// ValidationResult aggregates per-question errors for a section or a whole
// assessment, keyed by question id.
type ValidationResult struct {
	Errors      map[string][]string `json:"errors"`
	TotalErrors int                 `json:"totalErrors"`
}
