package model

import (
	"time"

	"gorm.io/gorm"
)

// Assessment is a published assessment. Its primary key is set to the
// document's logical id on publish, so republishing the same logical
// assessment overwrites the row instead of duplicating it.
type Assessment struct {
	ID        int64          `gorm:"primarykey;autoIncrement:false" json:"id"`
	JobID     uint           `json:"job_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Data      string         `json:"data" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
