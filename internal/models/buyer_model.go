package models

import (
	"time"

	"gorm.io/gorm"
)

type BuyerStatus string

const (
	BuyerActive    BuyerStatus = "active"
	BuyerSuspended BuyerStatus = "suspended"
)

type Buyer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName string         `gorm:"size:200" json:"company_name"`
	ContactName string         `gorm:"size:100" json:"contact_name"`
	Phone       string         `gorm:"size:50" json:"phone"`
	Country     string         `gorm:"size:100" json:"country"`
	Status      BuyerStatus    `gorm:"type:buyer_status;default:'active'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type SavedProduct struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"index:idx_saved_buyer_product,unique" json:"buyer_id"`
	ProductID uint      `gorm:"index:idx_saved_buyer_product,unique" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowedSupplier struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuyerID    uint      `gorm:"index:idx_follow_buyer_supplier,unique" json:"buyer_id"`
	SupplierID uint      `gorm:"index:idx_follow_buyer_supplier,unique" json:"supplier_id"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
