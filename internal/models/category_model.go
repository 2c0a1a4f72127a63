package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;uniqueIndex" json:"name"`
	ParentID     *uint          `gorm:"index" json:"parent_id,omitempty"`
	Parent       *Category      `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Active       bool           `gorm:"default:true" json:"active"`
	ProductCount int64          `gorm:"default:0" json:"product_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
