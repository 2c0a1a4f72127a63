package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;size:100" json:"email"`
	Password      string         `gorm:"size:255" json:"-"`
	Role          string         `gorm:"size:20;index" json:"role"`
	Provider      string         `gorm:"size:50;default:'local'" json:"provider"`
	Approved      bool           `gorm:"default:false" json:"approved"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin also implies approved: the admin account never sits in a review queue.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
