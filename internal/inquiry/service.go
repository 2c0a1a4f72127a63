package inquiry

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("inquiry not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotApproved       = errors.New("inquiry has not been approved")
)

func find(id uint) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := database.DB.First(&inq, id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &inq, nil
}

// Create stores a buyer inquiry behind the admin gate. The supplier does not
// see it until an admin approves it.
func Create(inq *models.Inquiry) error {
	inq.Reference = "INQ-" + uuid.NewString()
	inq.Status = models.InquiryPending
	inq.AdminApprovalStatus = models.ApprovalPending

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inq).Error; err != nil {
			return err
		}
		if inq.ProductID != nil {
			if err := tx.Model(&models.Product{}).Where("id = ?", *inq.ProductID).
				Update("inquiry_count", gorm.Expr("inquiry_count + 1")).Error; err != nil {
				return err
			}
		}
		return notification.NotifyAdmin(tx, models.AdminNotifyNewInquiry,
			fmt.Sprintf("Inquiry %s awaits review.", inq.Reference),
			fmt.Sprintf("/admin/inquiries/%d", inq.ID))
	})
}

// Approve opens the inquiry to its supplier. Approving clears any buyer reply
// left over from an earlier approval, so the conversation restarts clean.
func Approve(id uint) (*models.Inquiry, error) {
	inq, err := find(id)
	if err != nil {
		return nil, err
	}
	if inq.Status == models.InquiryDeleted {
		return nil, fmt.Errorf("%w: inquiry is deleted", ErrInvalidTransition)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		inq.AdminApprovalStatus = models.ApprovalApproved
		inq.RejectionReason = ""
		inq.BuyerReply = nil
		inq.BuyerRepliedAt = nil
		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		buyerUserID, err := buyerUserID(tx, inq.BuyerID)
		if err != nil {
			return err
		}
		if err := notification.Notify(tx, buyerUserID, models.NotifyInquiryApproved,
			fmt.Sprintf("Your inquiry %s has been approved and forwarded to the supplier.", inq.Reference),
			fmt.Sprintf("/buyer/inquiries/%d", inq.ID)); err != nil {
			return err
		}
		supplierUID, err := supplierUserID(tx, inq.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, supplierUID, models.NotifyInquiryApproved,
			fmt.Sprintf("You have a new inquiry: %s", inq.Subject),
			fmt.Sprintf("/supplier/inquiries/%d", inq.ID))
	})
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// Reject hides the inquiry from the supplier. An already-approved inquiry can
// be rejected later if moderation reconsiders; the buyer reply is cleared
// either way.
func Reject(id uint, reason string) (*models.Inquiry, error) {
	inq, err := find(id)
	if err != nil {
		return nil, err
	}
	if inq.Status == models.InquiryDeleted {
		return nil, fmt.Errorf("%w: inquiry is deleted", ErrInvalidTransition)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		inq.AdminApprovalStatus = models.ApprovalRejected
		inq.RejectionReason = reason
		inq.BuyerReply = nil
		inq.BuyerRepliedAt = nil
		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		buyerUID, err := buyerUserID(tx, inq.BuyerID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, buyerUID, models.NotifyInquiryRejected,
			fmt.Sprintf("Your inquiry %s was rejected: %s", inq.Reference, reason),
			fmt.Sprintf("/buyer/inquiries/%d", inq.ID))
	})
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// SupplierReply records the supplier's answer. Only approved inquiries can be
// answered; replying moves the conversation to replied.
func SupplierReply(inq *models.Inquiry, reply string) error {
	if inq.AdminApprovalStatus != models.ApprovalApproved {
		return ErrNotApproved
	}
	if inq.Status == models.InquiryDeleted {
		return fmt.Errorf("%w: inquiry is deleted", ErrInvalidTransition)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		inq.SupplierReply = &reply
		inq.SupplierRepliedAt = &now
		inq.Status = models.InquiryReplied
		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		buyerUID, err := buyerUserID(tx, inq.BuyerID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, buyerUID, models.NotifyInquiryReplied,
			fmt.Sprintf("The supplier replied to your inquiry %s.", inq.Reference),
			fmt.Sprintf("/buyer/inquiries/%d", inq.ID))
	})
}

// BuyerReply records the buyer's follow-up. It needs an approved inquiry that
// the supplier has already answered.
func BuyerReply(inq *models.Inquiry, reply string) error {
	if inq.AdminApprovalStatus != models.ApprovalApproved {
		return ErrNotApproved
	}
	if inq.SupplierReply == nil {
		return fmt.Errorf("%w: supplier has not replied yet", ErrInvalidTransition)
	}
	if inq.Status == models.InquiryDeleted {
		return fmt.Errorf("%w: inquiry is deleted", ErrInvalidTransition)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		inq.BuyerReply = &reply
		inq.BuyerRepliedAt = &now
		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		supplierUID, err := supplierUserID(tx, inq.SupplierID)
		if err != nil {
			return err
		}
		return notification.Notify(tx, supplierUID, models.NotifyInquiryReplied,
			fmt.Sprintf("The buyer replied on inquiry %s.", inq.Reference),
			fmt.Sprintf("/supplier/inquiries/%d", inq.ID))
	})
}

// SoftDelete parks the conversation without losing it.
func SoftDelete(id uint) (*models.Inquiry, error) {
	inq, err := find(id)
	if err != nil {
		return nil, err
	}
	if inq.Status == models.InquiryDeleted {
		return inq, nil
	}

	inq.Status = models.InquiryDeleted
	if err := database.DB.Save(inq).Error; err != nil {
		return nil, err
	}
	return inq, nil
}

// Recover brings a deleted inquiry back to whichever conversation state its
// replies imply.
func Recover(id uint) (*models.Inquiry, error) {
	inq, err := find(id)
	if err != nil {
		return nil, err
	}
	if inq.Status != models.InquiryDeleted {
		return nil, fmt.Errorf("%w: inquiry is not deleted", ErrInvalidTransition)
	}

	if inq.SupplierReply != nil {
		inq.Status = models.InquiryReplied
	} else {
		inq.Status = models.InquiryPending
	}
	if err := database.DB.Save(inq).Error; err != nil {
		return nil, err
	}
	return inq, nil
}

func buyerUserID(tx *gorm.DB, buyerID uint) (uint, error) {
	var b models.Buyer
	if err := tx.First(&b, buyerID).Error; err != nil {
		return 0, err
	}
	return b.UserID, nil
}

func supplierUserID(tx *gorm.DB, supplierID uint) (uint, error) {
	var s models.Supplier
	if err := tx.First(&s, supplierID).Error; err != nil {
		return 0, err
	}
	return s.UserID, nil
}
