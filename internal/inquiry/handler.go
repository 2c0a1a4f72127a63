package inquiry

import (
	"errors"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, "Inquiry")
	case errors.Is(err, ErrNotApproved):
		return response.Conflict(c, "Inquiry has not been approved by an administrator")
	case errors.Is(err, ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalError(c, "Failed to update inquiry")
	}
}

// InquiryView flattens an inquiry for list screens. Deleted counterparties
// degrade to placeholder labels instead of breaking the row.
type InquiryView struct {
	models.Inquiry
	BuyerCompany    string `json:"buyer_company"`
	SupplierCompany string `json:"supplier_company"`
	ProductName     string `json:"product_name"`
}

func enrich(inq models.Inquiry) InquiryView {
	view := InquiryView{Inquiry: inq, BuyerCompany: "Unknown", SupplierCompany: "Unknown", ProductName: "General Inquiry"}
	if inq.Buyer != nil {
		if inq.Buyer.CompanyName != "" {
			view.BuyerCompany = inq.Buyer.CompanyName
		} else if inq.Buyer.ContactName != "" {
			view.BuyerCompany = inq.Buyer.ContactName
		}
	}
	if inq.Supplier != nil && inq.Supplier.CompanyName != "" {
		view.SupplierCompany = inq.Supplier.CompanyName
	}
	if inq.Product != nil {
		view.ProductName = inq.Product.Name
	}
	return view
}

func enrichAll(inquiries []models.Inquiry) []InquiryView {
	views := make([]InquiryView, 0, len(inquiries))
	for _, inq := range inquiries {
		views = append(views, enrich(inq))
	}
	return views
}

// ========== BUYER ==========

func CreateInquiryHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	var body struct {
		SupplierID uint   `json:"supplier_id"`
		ProductID  *uint  `json:"product_id"`
		Subject    string `json:"subject"`
		Message    string `json:"message"`
		Quantity   int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	fieldErrors := map[string]string{}
	if body.SupplierID == 0 {
		fieldErrors["supplier_id"] = "supplier_id is required"
	}
	if body.Subject == "" {
		fieldErrors["subject"] = "subject is required"
	}
	if body.Message == "" {
		fieldErrors["message"] = "message is required"
	}
	if len(fieldErrors) > 0 {
		return response.ValidationError(c, fieldErrors)
	}

	var s models.Supplier
	if err := database.DB.Where("id = ? AND status = ?", body.SupplierID, models.SupplierActive).First(&s).Error; err != nil {
		return response.NotFound(c, "Supplier")
	}

	if body.ProductID != nil {
		var p models.Product
		if err := database.DB.Where("id = ? AND supplier_id = ? AND status = ?",
			*body.ProductID, body.SupplierID, models.ProductApproved).First(&p).Error; err != nil {
			return response.NotFound(c, "Product")
		}
	}

	inq := models.Inquiry{
		BuyerID:    buyerID,
		SupplierID: body.SupplierID,
		ProductID:  body.ProductID,
		Subject:    utils.Sanitize(body.Subject),
		Message:    utils.Sanitize(body.Message),
		Quantity:   body.Quantity,
	}

	if err := Create(&inq); err != nil {
		return response.InternalError(c, "Failed to create inquiry")
	}

	return response.Created(c, inq, "Inquiry submitted for review")
}

func ListMyInquiriesHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	var inquiries []models.Inquiry
	if err := database.DB.
		Preload("Supplier").
		Preload("Product").
		Where("buyer_id = ? AND status <> ?", buyerID, models.InquiryDeleted).
		Order("created_at DESC").
		Find(&inquiries).Error; err != nil {
		return response.InternalError(c, "Failed to fetch inquiries")
	}

	return response.Success(c, enrichAll(inquiries), "Inquiries retrieved successfully")
}

func GetMyInquiryHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var inq models.Inquiry
	if err := database.DB.
		Preload("Supplier").
		Preload("Product").
		Where("id = ? AND buyer_id = ?", id, buyerID).
		First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	return response.Success(c, enrich(inq), "Inquiry retrieved successfully")
}

func BuyerReplyHandler(c *fiber.Ctx) error {
	buyerID := c.Locals("buyer_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var body struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Reply == "" {
		return response.ValidationError(c, map[string]string{"reply": "reply is required"})
	}

	var inq models.Inquiry
	if err := database.DB.Where("id = ? AND buyer_id = ?", id, buyerID).First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	if err := BuyerReply(&inq, utils.Sanitize(body.Reply)); err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Reply sent")
}

// ========== SUPPLIER ==========

// Suppliers only ever see inquiries that passed the admin gate.

func ListSupplierInquiriesHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	var inquiries []models.Inquiry
	if err := database.DB.
		Preload("Buyer").
		Preload("Product").
		Where("supplier_id = ? AND admin_approval_status = ? AND status <> ?",
			supplierID, models.ApprovalApproved, models.InquiryDeleted).
		Order("created_at DESC").
		Find(&inquiries).Error; err != nil {
		return response.InternalError(c, "Failed to fetch inquiries")
	}

	return response.Success(c, enrichAll(inquiries), "Inquiries retrieved successfully")
}

func GetSupplierInquiryHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var inq models.Inquiry
	if err := database.DB.
		Preload("Buyer").
		Preload("Product").
		Where("id = ? AND supplier_id = ? AND admin_approval_status = ?",
			id, supplierID, models.ApprovalApproved).
		First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	return response.Success(c, enrich(inq), "Inquiry retrieved successfully")
}

func SupplierReplyHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var body struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Reply == "" {
		return response.ValidationError(c, map[string]string{"reply": "reply is required"})
	}

	var inq models.Inquiry
	if err := database.DB.Where("id = ? AND supplier_id = ?", id, supplierID).First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	if err := SupplierReply(&inq, utils.Sanitize(body.Reply)); err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Reply sent")
}

func SupplierDeleteInquiryHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var inq models.Inquiry
	if err := database.DB.Where("id = ? AND supplier_id = ? AND admin_approval_status = ?",
		id, supplierID, models.ApprovalApproved).First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	deleted, err := SoftDelete(inq.ID)
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, deleted, "Inquiry deleted")
}

func SupplierRecoverInquiryHandler(c *fiber.Ctx) error {
	supplierID := c.Locals("supplier_id").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var inq models.Inquiry
	if err := database.DB.Where("id = ? AND supplier_id = ? AND admin_approval_status = ?",
		id, supplierID, models.ApprovalApproved).First(&inq).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	recovered, err := Recover(inq.ID)
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, recovered, "Inquiry recovered")
}

// ========== ADMIN ==========

func AdminListInquiriesHandler(c *fiber.Ctx) error {
	var inquiries []models.Inquiry
	query := database.DB.
		Preload("Buyer").
		Preload("Supplier").
		Preload("Product").
		Order("created_at DESC")

	approval := c.Query("approval", string(models.ApprovalPending))
	if approval != "all" {
		query = query.Where("admin_approval_status = ?", approval)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&inquiries).Error; err != nil {
		return response.InternalError(c, "Failed to fetch inquiries")
	}

	return response.Success(c, enrichAll(inquiries), "Inquiries retrieved successfully")
}

func AdminGetInquiryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	var inq models.Inquiry
	if err := database.DB.
		Preload("Buyer").
		Preload("Supplier").
		Preload("Product").
		First(&inq, id).Error; err != nil {
		return response.NotFound(c, "Inquiry")
	}

	return response.Success(c, enrich(inq), "Inquiry retrieved successfully")
}

func ApproveInquiryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	inq, err := Approve(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Inquiry approved")
}

func RejectInquiryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
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

	inq, err := Reject(uint(id), utils.Sanitize(body.Reason))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Inquiry rejected")
}

func DeleteInquiryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	inq, err := SoftDelete(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Inquiry deleted")
}

func RecoverInquiryHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid inquiry ID", nil)
	}

	inq, err := Recover(uint(id))
	if err != nil {
		return moderationError(c, err)
	}

	return response.Success(c, inq, "Inquiry recovered")
}
