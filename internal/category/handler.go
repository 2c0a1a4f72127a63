package category

import (
	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"

	"github.com/gofiber/fiber/v2"
)

func ListCategoriesHandler(c *fiber.Ctx) error {
	var categories []models.Category
	query := database.DB.Order("name ASC")

	// Public callers only see active categories; admins pass ?all=true.
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&categories).Error; err != nil {
		return response.InternalError(c, "Failed to fetch categories")
	}

	return response.Success(c, categories, "Categories retrieved successfully")
}

func GetCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	var cat models.Category
	if err := database.DB.Preload("Parent").First(&cat, id).Error; err != nil {
		return response.NotFound(c, "Category")
	}

	return response.Success(c, cat, "Category retrieved successfully")
}

func CreateCategoryHandler(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	if body.ParentID != nil {
		var parent models.Category
		if err := database.DB.First(&parent, *body.ParentID).Error; err != nil {
			return response.NotFound(c, "Parent category")
		}
	}

	cat := models.Category{Name: body.Name, ParentID: body.ParentID, Active: true}
	if err := database.DB.Create(&cat).Error; err != nil {
		return response.Conflict(c, "Category name already exists")
	}

	return response.Created(c, cat, "Category created successfully")
}

func UpdateCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	var cat models.Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		return response.NotFound(c, "Category")
	}

	var body struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Name != nil && *body.Name != "" {
		cat.Name = *body.Name
	}
	if body.Active != nil {
		cat.Active = *body.Active
	}

	if err := database.DB.Save(&cat).Error; err != nil {
		return response.InternalError(c, "Failed to update category")
	}

	return response.Success(c, cat, "Category updated successfully")
}

// DeleteCategoryHandler refuses to delete a category with subcategories,
// deactivates one that still has products, and hard-deletes otherwise.
func DeleteCategoryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID", nil)
	}

	var cat models.Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		return response.NotFound(c, "Category")
	}

	var children int64
	if err := database.DB.Model(&models.Category{}).Where("parent_id = ?", cat.ID).Count(&children).Error; err != nil {
		return response.InternalError(c, "Failed to delete category")
	}
	if children > 0 {
		return response.Conflict(c, "Category has subcategories, delete or reassign them first")
	}

	var products int64
	if err := database.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Count(&products).Error; err != nil {
		return response.InternalError(c, "Failed to delete category")
	}
	if products > 0 {
		cat.Active = false
		if err := database.DB.Save(&cat).Error; err != nil {
			return response.InternalError(c, "Failed to deactivate category")
		}
		return response.Success(c, cat, "Category deactivated, products still reference it")
	}

	if err := database.DB.Unscoped().Delete(&cat).Error; err != nil {
		return response.InternalError(c, "Failed to delete category")
	}

	return response.NoContent(c)
}
