package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPending   ProductStatus = "pending"
	ProductApproved  ProductStatus = "approved"
	ProductRejected  ProductStatus = "rejected"
	ProductSuspended ProductStatus = "suspended"
	ProductDeleted   ProductStatus = "deleted"
)

type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	SupplierID       uint           `gorm:"index;not null" json:"supplier_id"`
	Supplier         *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CategoryID       *uint          `gorm:"index" json:"category_id,omitempty"`
	Category         *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name             string         `gorm:"size:200;index" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	Price            float64        `json:"price"`
	Currency         string         `gorm:"size:10;default:'USD'" json:"currency"`
	Unit             string         `gorm:"size:50" json:"unit"`
	MinOrderQty      int            `gorm:"default:1" json:"min_order_qty"`
	ImageURL         string         `gorm:"size:500" json:"image_url,omitempty"`
	Status           ProductStatus  `gorm:"type:product_status;default:'draft';index" json:"status"`
	ViewCount        int64          `gorm:"default:0" json:"view_count"`
	InquiryCount     int64          `gorm:"default:0" json:"inquiry_count"`
	ReviewedBy       *uint          `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time     `json:"reviewed_at,omitempty"`
	ReviewNotes      string         `gorm:"type:text" json:"review_notes,omitempty"`
	RejectionReason  string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	RejectedBy       *uint          `json:"rejected_by,omitempty"`
	RejectedAt       *time.Time     `json:"rejected_at,omitempty"`
	SuspensionReason string         `gorm:"type:text" json:"suspension_reason,omitempty"`
	SuspendedBy      *uint          `json:"suspended_by,omitempty"`
	SuspendedAt      *time.Time     `json:"suspended_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
