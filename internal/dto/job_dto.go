package dto

import "time"

// JobResponse is the job shape returned by the listing and CRUD endpoints.
type JobResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobListQuery captures the supported listing filters.
type JobListQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
	Sort     string
}

// CandidateResponseDTO is the candidate shape returned over the API.
type CandidateResponseDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     string    `json:"stage"`
	JobID     uint      `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidateListQuery captures the supported candidate filters.
type CandidateListQuery struct {
	Search   string
	Stage    string
	Page     int
	PageSize int
}
