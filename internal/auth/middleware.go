package auth

import (
	"strings"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid token format")
		}

		userID, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

func RoleProtected(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		var u models.User
		if err := database.DB.First(&u, userID).Error; err != nil {
			return response.Unauthorized(c, "User not found")
		}

		for _, role := range allowedRoles {
			if u.Role == role {
				c.Locals("role", u.Role)
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SupplierProtected resolves the caller's supplier profile and refuses
// suspended or deleted accounts. Stores the profile ID in locals.
func SupplierProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		var supplier models.Supplier
		if err := database.DB.Where("user_id = ?", userID).First(&supplier).Error; err != nil {
			return response.Forbidden(c, "Supplier profile required")
		}

		if supplier.Status == models.SupplierSuspended || supplier.Status == models.SupplierDeleted {
			return response.Forbidden(c, "Supplier account is "+string(supplier.Status))
		}

		c.Locals("supplier_id", supplier.ID)
		return c.Next()
	}
}

// BuyerProtected resolves the caller's buyer profile; suspended buyers are refused.
func BuyerProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		var buyer models.Buyer
		if err := database.DB.Where("user_id = ?", userID).First(&buyer).Error; err != nil {
			return response.Forbidden(c, "Buyer profile required")
		}

		if buyer.Status == models.BuyerSuspended {
			return response.Forbidden(c, "Buyer account is suspended")
		}

		c.Locals("buyer_id", buyer.ID)
		return c.Next()
	}
}
