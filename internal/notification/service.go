package notification

import (
	"github.com/tradelink/marketplace/internal/models"

	"gorm.io/gorm"
)

// Notify writes a user-facing notification. Callers pass their transaction
// handle so the notification commits or rolls back with the status change
// that produced it.
func Notify(tx *gorm.DB, userID uint, notifType, message, link string) error {
	n := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Link:    link,
	}
	return tx.Create(&n).Error
}

// NotifyAdmin writes an admin-facing notification (new registrations,
// products and inquiries entering the review queues).
func NotifyAdmin(tx *gorm.DB, notifType, message, link string) error {
	n := models.AdminNotification{
		Type:    notifType,
		Message: message,
		Link:    link,
	}
	return tx.Create(&n).Error
}
