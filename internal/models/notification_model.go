package models

import (
	"time"

	"gorm.io/gorm"
)

// User-facing notification types, one per moderation transition.
const (
	NotifyProfileApproved   = "profile_approved"
	NotifyProfileRejected   = "profile_rejected"
	NotifyProfileSuspended  = "profile_suspended"
	NotifyProfileActivated  = "profile_activated"
	NotifyProfileDeleted    = "profile_deleted"
	NotifyAccountSuspended  = "account_suspended"
	NotifyAccountActivated  = "account_activated"
	NotifyProductApproved   = "product_approved"
	NotifyProductRejected   = "product_rejected"
	NotifyProductSuspended  = "product_suspended"
	NotifyProductRestored   = "product_restored"
	NotifyInquiryApproved   = "inquiry_approved"
	NotifyInquiryRejected   = "inquiry_rejected"
	NotifyInquiryReplied    = "inquiry_replied"
)

// Admin-facing notification types.
const (
	AdminNotifySupplierRegistration = "supplier_registration"
	AdminNotifyNewInquiry           = "new_inquiry"
	AdminNotifyNewProduct           = "new_product"
)

type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Type      string         `gorm:"size:50;index" json:"type"`
	Message   string         `gorm:"type:text" json:"message"`
	Link      string         `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type AdminNotification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      string         `gorm:"size:50;index" json:"type"`
	Message   string         `gorm:"type:text" json:"message"`
	Link      string         `gorm:"size:255" json:"link,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
