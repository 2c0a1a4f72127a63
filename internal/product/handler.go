package product

import (
	"errors"
	"strconv"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, "Product")
	case errors.Is(err, ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalError(c, "Failed to update product")
	}
}

// ========== PUBLIC ==========

// ListProductsHandler is the public catalog: approved products from active
// suppliers only. A suspended or deleted supplier takes its whole catalog
// offline without touching the product rows.
func ListProductsHandler(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&models.Product{}).
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Where("products.status = ?", models.ProductApproved).
		Where("suppliers.status = ?", models.SupplierActive)

	if keyword := c.Query("q"); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("products.category_id = ?", categoryID)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		query = query.Where("products.price >= ?", minPrice)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		query = query.Where("products.price <= ?", maxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalError(c, "Failed to fetch products")
	}

	var products []models.Product
	if err := query.
		Preload("Supplier").
		Preload("Category").
		Order("products.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		return response.InternalError(c, "Failed to fetch products")
	}

	meta := response.CalculateMeta(page, limit, total)
	return response.SuccessWithMeta(c, products, meta, "Products retrieved successfully")
}

func GetProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.
		Preload("Supplier").
		Preload("Category").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Where("products.id = ? AND products.status = ? AND suppliers.status = ?",
			id, models.ProductApproved, models.SupplierActive).
		First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	database.DB.Model(&p).Update("view_count", gorm.Expr("view_count + 1"))
	p.ViewCount++

	return response.Success(c, p, "Product retrieved successfully")
}

// ========== SUPPLIER ==========

func CreateProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	var body struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		Unit        string  `json:"unit"`
		MinOrderQty int     `json:"min_order_qty"`
		ImageURL    string  `json:"image_url"`
		CategoryID  *uint   `json:"category_id"`
		Submit      bool    `json:"submit"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	fieldErrors := map[string]string{}
	if body.Name == "" {
		fieldErrors["name"] = "name is required"
	}
	if body.Price <= 0 {
		fieldErrors["price"] = "price must be greater than zero"
	}
	if len(fieldErrors) > 0 {
		return response.ValidationError(c, fieldErrors)
	}

	if body.CategoryID != nil {
		var cat models.Category
		if err := database.DB.Where("id = ? AND active = ?", *body.CategoryID, true).First(&cat).Error; err != nil {
			return response.NotFound(c, "Category")
		}
	}

	if body.MinOrderQty < 1 {
		body.MinOrderQty = 1
	}
	if body.Currency == "" {
		body.Currency = "USD"
	}

	p := models.Product{
		SupplierID:  supplierID,
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Description: utils.Sanitize(body.Description),
		Price:       body.Price,
		Currency:    body.Currency,
		Unit:        body.Unit,
		MinOrderQty: body.MinOrderQty,
		ImageURL:    body.ImageURL,
	}

	if err := Create(&p, body.Submit); err != nil {
		return response.InternalError(c, "Failed to create product")
	}

	return response.Created(c, p, "Product created successfully")
}

func ListMyProductsHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	var products []models.Product
	query := database.DB.Preload("Category").
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&products).Error; err != nil {
		return response.InternalError(c, "Failed to fetch products")
	}

	return response.Success(c, products, "Products retrieved successfully")
}

func GetMyProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Preload("Category").
		Where("id = ? AND supplier_id = ?", id, supplierID).
		First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	return response.Success(c, p, "Product retrieved successfully")
}

func UpdateProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Where("id = ? AND supplier_id = ?", id, supplierID).First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}
	if p.Status == models.ProductDeleted {
		return response.Conflict(c, "Product is deleted, recover it first")
	}

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Currency    *string  `json:"currency"`
		Unit        *string  `json:"unit"`
		MinOrderQty *int     `json:"min_order_qty"`
		ImageURL    *string  `json:"image_url"`
		CategoryID  *uint    `json:"category_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name != nil && *body.Name != "" {
		p.Name = *body.Name
	}
	if body.Description != nil {
		p.Description = utils.Sanitize(*body.Description)
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			return response.ValidationError(c, map[string]string{"price": "price must be greater than zero"})
		}
		p.Price = *body.Price
	}
	if body.Currency != nil && *body.Currency != "" {
		p.Currency = *body.Currency
	}
	if body.Unit != nil {
		p.Unit = *body.Unit
	}
	if body.MinOrderQty != nil && *body.MinOrderQty >= 1 {
		p.MinOrderQty = *body.MinOrderQty
	}
	if body.ImageURL != nil {
		p.ImageURL = *body.ImageURL
	}
	if body.CategoryID != nil {
		var cat models.Category
		if err := database.DB.Where("id = ? AND active = ?", *body.CategoryID, true).First(&cat).Error; err != nil {
			return response.NotFound(c, "Category")
		}
		p.CategoryID = body.CategoryID
	}

	if err := ApplyUpdate(&p); err != nil {
		return response.InternalError(c, "Failed to update product")
	}

	return response.Success(c, p, "Product updated successfully")
}

func SubmitProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Where("id = ? AND supplier_id = ?", id, supplierID).First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	if err := Submit(&p); err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product submitted for review")
}

func DeleteMyProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Where("id = ? AND supplier_id = ?", id, supplierID).First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	updated, err := SoftDelete(p.ID)
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, updated, "Product deleted")
}

func RecoverMyProductHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Where("id = ? AND supplier_id = ?", id, supplierID).First(&p).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	updated, err := Recover(p.ID)
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, updated, "Product recovered, awaiting review")
}

// ========== ADMIN ==========

func AdminListProductsHandler(c *fiber.Ctx) error {
	var products []models.Product
	query := database.DB.Preload("Supplier").Preload("Category").Order("created_at DESC")

	status := c.Query("status", string(models.ProductPending))
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&products).Error; err != nil {
		return response.InternalError(c, "Failed to fetch products")
	}

	return response.Success(c, products, "Products retrieved successfully")
}

func AdminGetProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var p models.Product
	if err := database.DB.Preload("Supplier").Preload("Category").First(&p, id).Error; err != nil {
		return response.NotFound(c, "Product")
	}

	return response.Success(c, p, "Product retrieved successfully")
}

func ApproveProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var body struct {
		Notes string `json:"notes"`
	}
	c.BodyParser(&body)

	actor := c.Locals("user_id").(uint)
	p, err := Approve(uint(id), actor, utils.Sanitize(body.Notes))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product approved")
}

func RejectProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Reason == "" {
		return response.ValidationError(c, map[string]string{"reason": "reason is required"})
	}

	actor := c.Locals("user_id").(uint)
	p, err := Reject(uint(id), actor, utils.Sanitize(body.Reason))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product rejected")
}

func SuspendProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Reason == "" {
		return response.ValidationError(c, map[string]string{"reason": "reason is required"})
	}

	actor := c.Locals("user_id").(uint)
	p, err := Suspend(uint(id), actor, utils.Sanitize(body.Reason))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product suspended")
}

func RestoreProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	p, err := Restore(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product restored")
}

func AdminDeleteProductHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID", nil)
	}

	if c.Query("hard") == "true" {
		if err := HardDelete(uint(id)); err != nil {
			return moderationError(c, err)
		}
		return response.NoContent(c)
	}

	p, err := SoftDelete(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, p, "Product deleted")
}

func ProductStatsHandler(c *fiber.Ctx) error {
	counts, err := CountByStatus()
	if err != nil {
		return response.InternalError(c, "Failed to compute stats")
	}

	return response.Success(c, counts, "Product stats retrieved")
}
