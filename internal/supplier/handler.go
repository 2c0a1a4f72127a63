package supplier

import (
	"errors"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, "Supplier")
	case errors.Is(err, ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalError(c, "Failed to update supplier")
	}
}

// ========== SUPPLIER SELF-SERVICE ==========

func GetMyProfileHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var s models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier profile")
	}

	return response.Success(c, s, "Profile retrieved successfully")
}

func UpdateMyProfileHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var s models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier profile")
	}

	var body struct {
		CompanyName string          `json:"company_name"`
		Description string          `json:"description"`
		Address     string          `json:"address"`
		City        string          `json:"city"`
		Country     string          `json:"country"`
		Website     string          `json:"website"`
		SocialLinks datatypes.JSON  `json:"social_links"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.CompanyName != "" {
		s.CompanyName = body.CompanyName
	}
	if body.Description != "" {
		s.Description = utils.Sanitize(body.Description)
	}
	if body.Address != "" {
		s.Address = body.Address
	}
	if body.City != "" {
		s.City = body.City
	}
	if body.Country != "" {
		s.Country = body.Country
	}
	if body.Website != "" {
		s.Website = body.Website
	}
	if body.SocialLinks != nil {
		s.SocialLinks = body.SocialLinks
	}

	if err := database.DB.Save(&s).Error; err != nil {
		return response.InternalError(c, "Failed to update profile")
	}

	return response.Success(c, s, "Profile updated successfully")
}

func SaveOnboardingDraftHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var s models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier profile")
	}

	body := c.Body()
	if len(body) == 0 {
		return response.BadRequest(c, "Draft body is required", nil)
	}

	s.OnboardingDraft = datatypes.JSON(body)
	if err := database.DB.Save(&s).Error; err != nil {
		return response.InternalError(c, "Failed to save draft")
	}

	return response.Success(c, s, "Draft saved")
}

func SubmitOnboardingHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var s models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier profile")
	}

	var body struct {
		CompanyName          string         `json:"company_name"`
		BusinessRegistration string         `json:"business_registration"`
		LegalEntityType      string         `json:"legal_entity_type"`
		Description          string         `json:"description"`
		Address              string         `json:"address"`
		City                 string         `json:"city"`
		Country              string         `json:"country"`
		Website              string         `json:"website"`
		SocialLinks          datatypes.JSON `json:"social_links"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	fieldErrors := map[string]string{}
	if body.CompanyName == "" {
		fieldErrors["company_name"] = "company_name is required"
	}
	if body.BusinessRegistration == "" {
		fieldErrors["business_registration"] = "business_registration is required"
	}
	if body.LegalEntityType == "" {
		fieldErrors["legal_entity_type"] = "legal_entity_type is required"
	}
	if body.Address == "" {
		fieldErrors["address"] = "address is required"
	}
	if body.Country == "" {
		fieldErrors["country"] = "country is required"
	}
	if len(fieldErrors) > 0 {
		return response.ValidationError(c, fieldErrors)
	}

	s.CompanyName = body.CompanyName
	s.BusinessRegistration = body.BusinessRegistration
	s.LegalEntityType = body.LegalEntityType
	s.Description = utils.Sanitize(body.Description)
	s.Address = body.Address
	s.City = body.City
	s.Country = body.Country
	s.Website = body.Website
	if body.SocialLinks != nil {
		s.SocialLinks = body.SocialLinks
	}

	if err := SubmitOnboarding(&s); err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Onboarding submitted for review")
}

// ========== PUBLIC ==========

func ListSuppliersHandler(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := database.DB.
		Where("status = ?", models.SupplierActive).
		Order("company_name ASC").
		Find(&suppliers).Error; err != nil {
		return response.InternalError(c, "Failed to fetch suppliers")
	}

	return response.Success(c, suppliers, "Suppliers retrieved successfully")
}

func GetSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	var s models.Supplier
	if err := database.DB.
		Where("id = ? AND status = ?", id, models.SupplierActive).
		First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier")
	}

	return response.Success(c, s, "Supplier retrieved successfully")
}

// ========== ADMIN ==========

func AdminListSuppliersHandler(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	query := database.DB.Preload("User").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&suppliers).Error; err != nil {
		return response.InternalError(c, "Failed to fetch suppliers")
	}

	return response.Success(c, suppliers, "Suppliers retrieved successfully")
}

func AdminGetSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	var s models.Supplier
	if err := database.DB.Preload("User").First(&s, id).Error; err != nil {
		return response.NotFound(c, "Supplier")
	}

	return response.Success(c, s, "Supplier retrieved successfully")
}

func ApproveSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	s, err := Approve(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier approved")
}

func RejectSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
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
	s, err := Reject(uint(id), actor, utils.Sanitize(body.Reason))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier rejected")
}

func SuspendSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
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
	s, err := Suspend(uint(id), actor, utils.Sanitize(body.Reason))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier suspended")
}

func ActivateSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	s, err := Activate(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier activated")
}

func DeleteSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	actor := c.Locals("user_id").(uint)
	s, err := SoftDelete(uint(id), actor)
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier deleted")
}

func RestoreSupplierHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID", nil)
	}

	s, err := Restore(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, s, "Supplier restored to review queue")
}

func SupplierStatsHandler(c *fiber.Ctx) error {
	counts, err := CountByStatus()
	if err != nil {
		return response.InternalError(c, "Failed to compute stats")
	}

	return response.Success(c, counts, "Supplier stats retrieved")
}
