package supplier

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
	ErrNotFound          = errors.New("supplier not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions is the closed set of legal supplier status changes. Anything
// not listed here is refused, regardless of which handler asks for it.
var transitions = map[models.SupplierStatus][]models.SupplierStatus{
	models.SupplierPendingApproval: {models.SupplierActive, models.SupplierRejected, models.SupplierDeleted},
	models.SupplierActive:          {models.SupplierSuspended, models.SupplierDeleted},
	models.SupplierSuspended:       {models.SupplierActive, models.SupplierDeleted},
	models.SupplierRejected:        {models.SupplierPendingApproval, models.SupplierDeleted},
}

func canTransition(from, to models.SupplierStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func find(id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := database.DB.First(&s, id).Error; err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Approve verifies the supplier and opens its public presence. The status
// change and the notification commit together.
func Approve(id uint) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(s.Status, models.SupplierActive) {
		return nil, fmt.Errorf("%w: %s -> active", ErrInvalidTransition, s.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		s.Status = models.SupplierActive
		s.Verified = true
		s.RejectionReason = ""
		s.RejectedBy = nil
		s.RejectedAt = nil
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.Notify(tx, s.UserID, models.NotifyProfileApproved,
			"Your supplier profile has been approved. You can now list products.",
			"/supplier/dashboard")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func Reject(id, actor uint, reason string) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(s.Status, models.SupplierRejected) {
		return nil, fmt.Errorf("%w: %s -> rejected", ErrInvalidTransition, s.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		s.Status = models.SupplierRejected
		s.Verified = false
		s.RejectionReason = reason
		s.RejectedBy = &actor
		s.RejectedAt = &now
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.Notify(tx, s.UserID, models.NotifyProfileRejected,
			"Your supplier profile was rejected: "+reason+". You may update and resubmit your onboarding.",
			"/supplier/onboarding")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func Suspend(id, actor uint, reason string) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(s.Status, models.SupplierSuspended) {
		return nil, fmt.Errorf("%w: %s -> suspended", ErrInvalidTransition, s.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		s.Status = models.SupplierSuspended
		s.SuspensionReason = reason
		s.SuspendedBy = &actor
		s.SuspendedAt = &now
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.Notify(tx, s.UserID, models.NotifyProfileSuspended,
			"Your supplier profile has been suspended: "+reason,
			"/supplier/dashboard")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Activate lifts a suspension. Activating an already-active supplier is a
// no-op success, so repeated admin clicks are harmless.
func Activate(id uint) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if s.Status == models.SupplierActive {
		return s, nil
	}
	if !canTransition(s.Status, models.SupplierActive) {
		return nil, fmt.Errorf("%w: %s -> active", ErrInvalidTransition, s.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		s.Status = models.SupplierActive
		s.SuspensionReason = ""
		s.SuspendedBy = nil
		s.SuspendedAt = nil
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.Notify(tx, s.UserID, models.NotifyProfileActivated,
			"Your supplier profile is active again.",
			"/supplier/dashboard")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SoftDelete marks the profile deleted but keeps the row for audit. Products
// are not touched; the public listing join hides them while the supplier is
// not active.
func SoftDelete(id, actor uint) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(s.Status, models.SupplierDeleted) {
		return nil, fmt.Errorf("%w: %s -> deleted", ErrInvalidTransition, s.Status)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		s.Status = models.SupplierDeleted
		s.Verified = false
		s.DeletedBy = &actor
		s.StatusDeletedAt = &now
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.Notify(tx, s.UserID, models.NotifyProfileDeleted,
			"Your supplier profile has been removed by an administrator.",
			"/support")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Restore returns a rejected supplier to the review queue with a clean slate.
func Restore(id uint) (*models.Supplier, error) {
	s, err := find(id)
	if err != nil {
		return nil, err
	}
	if s.Status != models.SupplierRejected {
		return nil, fmt.Errorf("%w: %s -> pending_approval", ErrInvalidTransition, s.Status)
	}

	s.Status = models.SupplierPendingApproval
	s.Verified = false
	s.RejectionReason = ""
	s.RejectedBy = nil
	s.RejectedAt = nil
	if err := database.DB.Save(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// SubmitOnboarding validates the completed onboarding form and queues the
// profile for admin review. Resubmission after rejection follows the same
// path and clears the earlier rejection.
func SubmitOnboarding(s *models.Supplier) error {
	if s.Status != models.SupplierPendingApproval && s.Status != models.SupplierRejected {
		return fmt.Errorf("%w: %s -> pending_approval", ErrInvalidTransition, s.Status)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		s.Status = models.SupplierPendingApproval
		s.OnboardingComplete = true
		s.OnboardingDraft = nil
		s.RejectionReason = ""
		s.RejectedBy = nil
		s.RejectedAt = nil
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return notification.NotifyAdmin(tx, models.AdminNotifySupplierRegistration,
			fmt.Sprintf("Supplier %q submitted onboarding and awaits review.", s.CompanyName),
			fmt.Sprintf("/admin/suppliers/%d", s.ID))
	})
}

func CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	statuses := []models.SupplierStatus{
		models.SupplierActive,
		models.SupplierPendingApproval,
		models.SupplierRejected,
		models.SupplierSuspended,
		models.SupplierDeleted,
	}
	for _, status := range statuses {
		var n int64
		if err := database.DB.Model(&models.Supplier{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[string(status)] = n
	}
	return counts, nil
}
