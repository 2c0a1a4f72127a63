package notification

import (
	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"

	"github.com/gofiber/fiber/v2"
)

func ListNotificationsHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var notifications []models.Notification
	query := database.DB.Where("user_id = ?", userID)

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return response.InternalError(c, "Failed to fetch notifications")
	}

	return response.Success(c, notifications, "Notifications retrieved successfully")
}

func UnreadCountHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)

	return response.Success(c, fiber.Map{"unread": count}, "Unread count retrieved")
}

func MarkReadHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID", nil)
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return response.InternalError(c, "Failed to update notification")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Notification")
	}

	return response.Success(c, nil, "Notification marked as read")
}

func MarkAllReadHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return response.InternalError(c, "Failed to update notifications")
	}

	return response.Success(c, nil, "All notifications marked as read")
}

func DeleteNotificationHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID", nil)
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return response.InternalError(c, "Failed to delete notification")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Notification")
	}

	return response.NoContent(c)
}

// ========== ADMIN NOTIFICATIONS ==========

func ListAdminNotificationsHandler(c *fiber.Ctx) error {
	var notifications []models.AdminNotification
	query := database.DB.Order("created_at DESC")

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return response.InternalError(c, "Failed to fetch admin notifications")
	}

	return response.Success(c, notifications, "Admin notifications retrieved successfully")
}

func MarkAdminReadHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID", nil)
	}

	result := database.DB.Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return response.InternalError(c, "Failed to update notification")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Notification")
	}

	return response.Success(c, nil, "Notification marked as read")
}
