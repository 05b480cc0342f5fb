package model

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `json:"title" gorm:"not null"`
	Slug      string         `json:"slug" gorm:"index"`
	Status    string         `json:"status" gorm:"default:'active';index"` // "active", "archived"
	Tags      []string       `json:"tags" gorm:"serializer:json"`
	Order     int            `json:"order" gorm:"column:sort_order;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
