package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SupplierStatus string

const (
	SupplierActive          SupplierStatus = "active"
	SupplierPendingApproval SupplierStatus = "pending_approval"
	SupplierRejected        SupplierStatus = "rejected"
	SupplierSuspended       SupplierStatus = "suspended"
	SupplierDeleted         SupplierStatus = "deleted"
)

type Supplier struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	UserID               uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User                 *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName          string         `gorm:"size:200" json:"company_name"`
	BusinessRegistration string         `gorm:"size:100" json:"business_registration"`
	LegalEntityType      string         `gorm:"size:50" json:"legal_entity_type"`
	Description          string         `gorm:"type:text" json:"description"`
	Address              string         `gorm:"type:text" json:"address"`
	City                 string         `gorm:"size:100" json:"city"`
	Country              string         `gorm:"size:100" json:"country"`
	Website              string         `gorm:"size:255" json:"website"`
	SocialLinks          datatypes.JSON `json:"social_links,omitempty"`
	Status               SupplierStatus `gorm:"type:supplier_status;default:'pending_approval';index" json:"status"`
	Verified             bool           `gorm:"default:false" json:"verified"`
	Rating               float64        `gorm:"default:0" json:"rating"`
	OnboardingComplete   bool           `gorm:"default:false" json:"onboarding_complete"`
	OnboardingDraft      datatypes.JSON `json:"onboarding_draft,omitempty"`
	RejectionReason      string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	RejectedBy           *uint          `json:"rejected_by,omitempty"`
	RejectedAt           *time.Time     `json:"rejected_at,omitempty"`
	SuspensionReason     string         `gorm:"type:text" json:"suspension_reason,omitempty"`
	SuspendedBy          *uint          `json:"suspended_by,omitempty"`
	SuspendedAt          *time.Time     `json:"suspended_at,omitempty"`
	DeletedBy            *uint          `json:"deleted_by,omitempty"`
	StatusDeletedAt      *time.Time     `json:"status_deleted_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
