package user

import (
	"github.com/tradelink/marketplace/internal/buyer"
	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListUsersHandler(c *fiber.Ctx) error {
	var users []models.User
	query := database.DB.Order("created_at DESC")

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("unverified") == "true" {
		query = query.Where("email_verified = ?", false)
	}

	if err := query.Find(&users).Error; err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	return response.Success(c, users, "Users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	return response.Success(c, user, "User retrieved successfully")
}

// DeleteUserHandler removes an account and its owned profile. Buyer accounts
// take the full cascade (saved products, follows, inquiries, notifications);
// supplier accounts lose their profile row but their products remain, hidden
// from public listings by the supplier-status join.
func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	currentUserID := c.Locals("user_id").(uint)
	if uint(id) == currentUserID {
		return response.BadRequest(c, "Cannot delete your own account", nil)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		switch user.Role {
		case models.RoleBuyer:
			var b models.Buyer
			if err := tx.Where("user_id = ?", user.ID).First(&b).Error; err == nil {
				if err := buyer.DeleteCascade(tx, &b); err != nil {
					return err
				}
				return nil
			}
		case models.RoleSupplier:
			if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Supplier{}).Error; err != nil {
				return err
			}
		}

		tx.Where("user_id = ?", user.ID).Delete(&models.VerificationToken{})
		tx.Where("user_id = ?", user.ID).Delete(&models.ResetToken{})
		tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.RefreshToken{})
		tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Notification{})

		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		return response.InternalError(c, "Failed to delete user")
	}

	return response.NoContent(c)
}
