package model

import (
	"time"

	"gorm.io/gorm"
)

// Submission is the timeline record created when a candidate submits an
// assessment for a job.
type Submission struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	JobID        uint           `json:"job_id" gorm:"not null;index"`
	CandidateID  uint           `json:"candidate_id" gorm:"not null;index"`
	AssessmentID int64          `json:"assessment_id"`
	Payload      string         `json:"payload" gorm:"type:text"`
	SubmittedAt  time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
