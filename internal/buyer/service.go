package buyer

import (
	"errors"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/notification"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("buyer not found")

func find(id uint) (*models.Buyer, error) {
	var b models.Buyer
	if err := database.DB.First(&b, id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &b, nil
}

// Suspend blocks the buyer from creating inquiries and saving products.
// Existing inquiries stay visible to their suppliers.
func Suspend(id uint) (*models.Buyer, error) {
	b, err := find(id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BuyerSuspended {
		return b, nil
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = models.BuyerSuspended
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return notification.Notify(tx, b.UserID, models.NotifyAccountSuspended,
			"Your buyer account has been suspended.",
			"/support")
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func Activate(id uint) (*models.Buyer, error) {
	b, err := find(id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BuyerActive {
		return b, nil
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = models.BuyerActive
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return notification.Notify(tx, b.UserID, models.NotifyAccountActivated,
			"Your buyer account is active again.",
			"/buyer/dashboard")
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteCascade removes a buyer and everything hanging off it: saved
// products, followed suppliers, the buyer's inquiries, the user's
// notifications and tokens, then the profile and the account itself.
// All deletes run inside the caller's transaction so a failure leaves
// no half-deleted buyer behind.
func DeleteCascade(tx *gorm.DB, b *models.Buyer) error {
	if err := tx.Where("buyer_id = ?", b.ID).Delete(&models.SavedProduct{}).Error; err != nil {
		return err
	}
	if err := tx.Where("buyer_id = ?", b.ID).Delete(&models.FollowedSupplier{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("buyer_id = ?", b.ID).Delete(&models.Inquiry{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("user_id = ?", b.UserID).Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	tx.Where("user_id = ?", b.UserID).Delete(&models.VerificationToken{})
	tx.Where("user_id = ?", b.UserID).Delete(&models.ResetToken{})
	if err := tx.Unscoped().Where("user_id = ?", b.UserID).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Delete(b).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("id = ?", b.UserID).Delete(&models.User{}).Error
}
