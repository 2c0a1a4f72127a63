package models

import (
	"time"

	"gorm.io/gorm"
)

// Inquiries carry two independent status axes: the buyer/supplier conversation
// state and the admin gate deciding whether the conversation is visible at all.

type InquiryStatus string

const (
	InquiryPending InquiryStatus = "pending"
	InquiryReplied InquiryStatus = "replied"
	InquiryDeleted InquiryStatus = "deleted"
)

type InquiryApprovalStatus string

const (
	ApprovalPending  InquiryApprovalStatus = "pending"
	ApprovalApproved InquiryApprovalStatus = "approved"
	ApprovalRejected InquiryApprovalStatus = "rejected"
)

type Inquiry struct {
	ID                  uint                  `gorm:"primaryKey" json:"id"`
	Reference           string                `gorm:"size:40;uniqueIndex" json:"reference"`
	BuyerID             uint                  `gorm:"index;not null" json:"buyer_id"`
	Buyer               *Buyer                `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SupplierID          uint                  `gorm:"index;not null" json:"supplier_id"`
	Supplier            *Supplier             `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	ProductID           *uint                 `gorm:"index" json:"product_id,omitempty"`
	Product             *Product              `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Subject             string                `gorm:"size:200" json:"subject"`
	Message             string                `gorm:"type:text" json:"message"`
	Quantity            int                   `gorm:"default:0" json:"quantity"`
	Status              InquiryStatus         `gorm:"type:inquiry_status;default:'pending';index" json:"status"`
	AdminApprovalStatus InquiryApprovalStatus `gorm:"type:inquiry_approval_status;default:'pending';index" json:"admin_approval_status"`
	RejectionReason     string                `gorm:"type:text" json:"rejection_reason,omitempty"`
	SupplierReply       *string               `gorm:"type:text" json:"supplier_reply,omitempty"`
	SupplierRepliedAt   *time.Time            `json:"supplier_replied_at,omitempty"`
	BuyerReply          *string               `gorm:"type:text" json:"buyer_reply,omitempty"`
	BuyerRepliedAt      *time.Time            `json:"buyer_replied_at,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	DeletedAt           gorm.DeletedAt        `gorm:"index" json:"-"`
}
