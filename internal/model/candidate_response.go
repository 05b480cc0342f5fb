package model

import (
	"time"

	"gorm.io/gorm"
)

// CandidateResponse holds one candidate's in-progress or submitted answers
// for one assessment. Unique per (assessment, candidate).
type CandidateResponse struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AssessmentID int64          `json:"assessment_id" gorm:"not null;index:idx_assessment_candidate,unique"`
	CandidateID  uint           `json:"candidate_id" gorm:"not null;index:idx_assessment_candidate,unique"`
	Responses    string         `json:"responses" gorm:"type:text;not null"`
	IsSubmitted  bool           `json:"is_submitted" gorm:"default:false"`
	LastModified time.Time      `json:"last_modified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
