package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/notification"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var transitions = map[models.ProductStatus][]models.ProductStatus{
	models.ProductDraft:     {models.ProductPending, models.ProductDeleted},
	models.ProductPending:   {models.ProductApproved, models.ProductRejected, models.ProductDeleted},
	models.ProductApproved:  {models.ProductPending, models.ProductSuspended, models.ProductDeleted},
	models.ProductRejected:  {models.ProductPending, models.ProductDeleted},
	models.ProductSuspended: {models.ProductApproved, models.ProductDeleted},
	models.ProductDeleted:   {models.ProductPending},
}

func canTransition(from, to models.ProductStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func find(id uint) (*models.Product, error) {
	var p models.Product
	if err := database.DB.First(&p, id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Create stores a new product for the supplier. Submitted products land in
// the admin review queue; drafts stay private. The category counter tracks
// every product that exists, not just approved ones.
func Create(p *models.Product, submit bool) error {
	if submit {
		p.Status = models.ProductPending
	} else {
		p.Status = models.ProductDraft
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.CategoryID != nil {
			if err := tx.Model(&models.Category{}).Where("id = ?", *p.CategoryID).
				Update("product_count", gorm.Expr("product_count + 1")).Error; err != nil {
				return err
			}
		}
		if p.Status == models.ProductPending {
			return notification.NotifyAdmin(tx, models.AdminNotifyNewProduct,
				fmt.Sprintf("Product %q awaits review.", p.Name),
				fmt.Sprintf("/admin/products/%d", p.ID))
		}
		return nil
	})
}

// Submit moves a draft or rejected product into the review queue.
func Submit(p *models.Product) error {
	if !canTransition(p.Status, models.ProductPending) {
		return fmt.Errorf("%w: %s -> pending", ErrInvalidTransition, p.Status)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		p.Status = models.ProductPending
		p.RejectionReason = ""
		p.RejectedBy = nil
		p.RejectedAt = nil
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return notification.NotifyAdmin(tx, models.AdminNotifyNewProduct,
			fmt.Sprintf("Product %q awaits review.", p.Name),
			fmt.Sprintf("/admin/products/%d", p.ID))
	})
}

// ApplyUpdate saves supplier edits. Editing an approved product drops it back
// into the review queue so changed listings never stay live unreviewed.
func ApplyUpdate(p *models.Product) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		resubmitted := false
		if p.Status == models.ProductApproved {
			p.Status = models.ProductPending
			p.ReviewedBy = nil
			p.ReviewedAt = nil
			p.ReviewNotes = ""
			resubmitted = true
		}
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if resubmitted {
			return notification.NotifyAdmin(tx, models.AdminNotifyNewProduct,
				fmt.Sprintf("Product %q was edited and awaits re-review.", p.Name),
				fmt.Sprintf("/admin/products/%d", p.ID))
		}
		return nil
	})
}

func Approve(id, actor uint, notes string) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(p.Status, models.ProductApproved) {
		return nil, fmt.Errorf("%w: %s -> approved", ErrInvalidTransition, p.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		p.Status = models.ProductApproved
		p.ReviewedBy = &actor
		p.ReviewedAt = &now
		p.ReviewNotes = notes
		p.RejectionReason = ""
		p.RejectedBy = nil
		p.RejectedAt = nil
		p.SuspensionReason = ""
		p.SuspendedBy = nil
		p.SuspendedAt = nil
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		userID, err := supplierUserID(tx, p.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, userID, models.NotifyProductApproved,
			fmt.Sprintf("Your product %q has been approved and is now listed.", p.Name),
			fmt.Sprintf("/products/%d", p.ID))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func Reject(id, actor uint, reason string) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(p.Status, models.ProductRejected) {
		return nil, fmt.Errorf("%w: %s -> rejected", ErrInvalidTransition, p.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		p.Status = models.ProductRejected
		p.RejectionReason = reason
		p.RejectedBy = &actor
		p.RejectedAt = &now
		p.ReviewedBy = &actor
		p.ReviewedAt = &now
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		userID, err := supplierUserID(tx, p.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, userID, models.NotifyProductRejected,
			fmt.Sprintf("Your product %q was rejected: %s", p.Name, reason),
			fmt.Sprintf("/supplier/products/%d", p.ID))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func Suspend(id, actor uint, reason string) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(p.Status, models.ProductSuspended) {
		return nil, fmt.Errorf("%w: %s -> suspended", ErrInvalidTransition, p.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		p.Status = models.ProductSuspended
		p.SuspensionReason = reason
		p.SuspendedBy = &actor
		p.SuspendedAt = &now
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		userID, err := supplierUserID(tx, p.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, userID, models.NotifyProductSuspended,
			fmt.Sprintf("Your product %q has been suspended: %s", p.Name, reason),
			fmt.Sprintf("/supplier/products/%d", p.ID))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Restore undoes a moderation verdict. A suspended product goes straight back
// to approved since it already passed review; a rejected one re-enters the
// review queue with its rejection cleared.
func Restore(id uint) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}

	if p.Status == models.ProductRejected {
		p.Status = models.ProductPending
		p.RejectionReason = ""
		p.RejectedBy = nil
		p.RejectedAt = nil
		if err := database.DB.Save(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	}

	if p.Status != models.ProductSuspended {
		return nil, fmt.Errorf("%w: %s -> approved", ErrInvalidTransition, p.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		p.Status = models.ProductApproved
		p.SuspensionReason = ""
		p.SuspendedBy = nil
		p.SuspendedAt = nil
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		userID, err := supplierUserID(tx, p.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, userID, models.NotifyProductRestored,
			fmt.Sprintf("Your product %q is listed again.", p.Name),
			fmt.Sprintf("/products/%d", p.ID))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SoftDelete marks the product deleted but keeps the row.
func SoftDelete(id uint) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(p.Status, models.ProductDeleted) {
		return nil, fmt.Errorf("%w: %s -> deleted", ErrInvalidTransition, p.Status)
	}

	p.Status = models.ProductDeleted
	if err := database.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Recover returns a soft-deleted product to the review queue.
func Recover(id uint) (*models.Product, error) {
	p, err := find(id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.ProductDeleted {
		return nil, fmt.Errorf("%w: %s -> pending", ErrInvalidTransition, p.Status)
	}

	p.Status = models.ProductPending
	if err := database.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// HardDelete removes the row entirely and releases its category slot.
func HardDelete(id uint) error {
	p, err := find(id)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.SavedProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(p).Error; err != nil {
			return err
		}
		if p.CategoryID != nil {
			return tx.Model(&models.Category{}).Where("id = ? AND product_count > 0", *p.CategoryID).
				Update("product_count", gorm.Expr("product_count - 1")).Error
		}
		return nil
	})
}

func supplierUserID(tx *gorm.DB, supplierID uint) (uint, error) {
	var s models.Supplier
	if err := tx.First(&s, supplierID).Error; err != nil {
		return 0, err
	}
	return s.UserID, nil
}

func CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	statuses := []models.ProductStatus{
		models.ProductDraft,
		models.ProductPending,
		models.ProductApproved,
		models.ProductRejected,
		models.ProductSuspended,
		models.ProductDeleted,
	}
	for _, status := range statuses {
		var n int64
		if err := database.DB.Model(&models.Product{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[string(status)] = n
	}
	return counts, nil
}
