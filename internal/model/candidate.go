package model

import (
	"time"

	"gorm.io/gorm"
)

type Candidate struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;index"`
	Stage     string         `json:"stage" gorm:"default:'applied';index"` // "applied", "screen", "tech", "offer", "hired", "rejected"
	JobID     uint           `json:"job_id" gorm:"not null;index"`
	Job       Job            `json:"job,omitempty" gorm:"foreignKey:JobID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
