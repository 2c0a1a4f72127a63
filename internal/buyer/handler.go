package buyer

import (
	"errors"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyProfileHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var b models.Buyer
	if err := database.DB.Where("user_id = ?", userID).First(&b).Error; err != nil {
		return response.NotFound(c, "Buyer profile")
	}

	return response.Success(c, b, "Profile retrieved successfully")
}

func UpdateMyProfileHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var b models.Buyer
	if err := database.DB.Where("user_id = ?", userID).First(&b).Error; err != nil {
		return response.NotFound(c, "Buyer profile")
	}

	var body struct {
		CompanyName string `json:"company_name"`
		ContactName string `json:"contact_name"`
		Phone       string `json:"phone"`
		Country     string `json:"country"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.CompanyName != "" {
		b.CompanyName = body.CompanyName
	}
	if body.ContactName != "" {
		b.ContactName = body.ContactName
	}
	if body.Phone != "" {
		b.Phone = body.Phone
	}
	if body.Country != "" {
		b.Country = body.Country
	}

	if err := database.DB.Save(&b).Error; err != nil {
		return response.InternalError(c, "Failed to update profile")
	}

	return response.Success(c, b, "Profile updated successfully")
}

// ========== SAVED PRODUCTS ==========

func SaveProductHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	productID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Where("id = ? AND status = ?", productID, models.ProductApproved).First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	saved := models.SavedProduct{BuyerID: buyerID, ProductID: p.ID}
	if err := database.DB.Create(&saved).Error; err != nil {
		// Unique index on (buyer_id, product_id) makes re-saving a conflict.
		return response.Conflict(c, "Product already saved")
	}

	return response.Created(c, saved, "Product saved")
}

func UnsaveProductHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	productID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	result := database.DB.Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Delete(&models.SavedProduct{})
	if result.Error != nil {
		return response.InternalError(c, "Failed to remove saved product")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Saved product")
	}

	return response.NoContent(c)
}

func ListSavedProductsHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	var saved []models.SavedProduct
	if err := database.DB.
		Preload("Product").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return response.InternalError(c, "Failed to fetch saved products")
	}

	return response.Success(c, saved, "Saved products retrieved successfully")
}

// ========== FOLLOWED SUPPLIERS ==========

func FollowSupplierHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	supplierID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	var s models.Supplier
	if err := database.DB.Where("id = ? AND status = ?", supplierID, models.SupplierActive).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier")
	}

	follow := models.FollowedSupplier{BuyerID: buyerID, SupplierID: s.ID}
	if err := database.DB.Create(&follow).Error; err != nil {
		return response.Conflict(c, "Supplier already followed")
	}

	return response.Created(c, follow, "Supplier followed")
}

func UnfollowSupplierHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	supplierID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	result := database.DB.Where("buyer_id = ? AND supplier_id = ?", buyerID, supplierID).
		Delete(&models.FollowedSupplier{})
	if result.Error != nil {
		return response.InternalError(c, "Failed to unfollow supplier")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Followed supplier")
	}

	return response.NoContent(c)
}

func ListFollowedSuppliersHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	var follows []models.FollowedSupplier
	if err := database.DB.
		Preload("Supplier").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return response.InternalError(c, "Failed to fetch followed suppliers")
	}

	return response.Success(c, follows, "Followed suppliers retrieved successfully")
}

// ========== ADMIN ==========

func AdminListBuyersHandler(c *fiber.Ctx) error {
	var buyers []models.Buyer
	query := database.DB.Preload("User").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&buyers).Error; err != nil {
		return response.InternalError(c, "Failed to fetch buyers")
	}

	return response.Success(c, buyers, "Buyers retrieved successfully")
}

func SuspendBuyerHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid buyer ID", nil)
	}

	b, err := Suspend(uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Buyer")
		}
		return response.InternalError(c, "Failed to suspend buyer")
	}

	return response.Success(c, b, "Buyer suspended")
}

func ActivateBuyerHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid buyer ID", nil)
	}

	b, err := Activate(uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Buyer")
		}
		return response.InternalError(c, "Failed to activate buyer")
	}

	return response.Success(c, b, "Buyer activated")
}

func DeleteBuyerHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid buyer ID", nil)
	}

	var b models.Buyer
	if err := database.DB.First(&b, id).Error; err != nil {
		return response.NotFound(c, "Buyer")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return DeleteCascade(tx, &b)
	})
	if err != nil {
		return response.InternalError(c, "Failed to delete buyer")
	}

	return response.NoContent(c)
}
