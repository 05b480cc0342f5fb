package model

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentDraft is the storage wrapper for an in-progress assessment
// document. The document itself (including its client-generated logical id)
// lives serialized in Data; the row id is store-assigned and unrelated.
type AssessmentDraft struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	JobID        uint           `json:"job_id" gorm:"not null;index"`
	Title        string         `json:"title"`
	Data         string         `json:"data" gorm:"type:text;not null"`
	LastModified time.Time      `json:"last_modified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
