package product_test

import (
	"fmt"
	"testing"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestCreateProductHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	u, s := testutils.CreateTestSupplier(t, db, "supplier@test.com", models.SupplierActive)
	token := testutils.GetAuthToken(t, u.ID, u.Role)

	t.Run("Success - Draft by default", func(t *testing.T) {
		body := map[string]interface{}{
			"name":  "Steel Bolts",
			"price": 0.5,
			"unit":  "kg",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/products", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var p models.Product
		db.Where("supplier_id = ? AND name = ?", s.ID, "Steel Bolts").First(&p)
		assert.Equal(t, models.ProductDraft, p.Status)
	})

	t.Run("Success - Submit lands in review queue and notifies admins", func(t *testing.T) {
		body := map[string]interface{}{
			"name":   "Copper Wire",
			"price":  3.2,
			"submit": true,
		}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/products", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var p models.Product
		db.Where("name = ?", "Copper Wire").First(&p)
		assert.Equal(t, models.ProductPending, p.Status)

		var n models.AdminNotification
		err = db.Where("type = ?", models.AdminNotifyNewProduct).First(&n).Error
		assert.NoError(t, err)
	})

	t.Run("Success - Create increments category counter", func(t *testing.T) {
		cat := models.Category{Name: "Metals", Active: true}
		db.Create(&cat)

		body := map[string]interface{}{
			"name":        "Aluminium Sheet",
			"price":       12.0,
			"category_id": cat.ID,
		}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/products", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var updated models.Category
		db.First(&updated, cat.ID)
		assert.Equal(t, int64(1), updated.ProductCount)
	})

	t.Run("Error - Price must be positive", func(t *testing.T) {
		body := map[string]interface{}{
			"name":  "Free Stuff",
			"price": 0,
		}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/products", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Suspended supplier cannot create products", func(t *testing.T) {
		su, _ := testutils.CreateTestSupplier(t, db, "suspended@test.com", models.SupplierSuspended)
		suToken := testutils.GetAuthToken(t, su.ID, su.Role)

		body := map[string]interface{}{"name": "Blocked", "price": 1.0}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/products", body, suToken)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})
}

func TestProductModeration(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	adminToken := testutils.GetAuthToken(t, admin.ID, admin.Role)

	supplierUser, s := testutils.CreateTestSupplier(t, db, "supplier@test.com", models.SupplierActive)

	newPending := func(name string) *models.Product {
		p := &models.Product{SupplierID: s.ID, Name: name, Price: 5, Status: models.ProductPending}
		db.Create(p)
		return p
	}

	t.Run("Success - Approve stamps reviewer and notifies supplier", func(t *testing.T) {
		p := newPending("Gadget A")

		body := map[string]interface{}{"notes": "Looks good"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/approve", p.ID), body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductApproved, updated.Status)
		assert.Equal(t, admin.ID, *updated.ReviewedBy)
		assert.NotNil(t, updated.ReviewedAt)

		var n models.Notification
		err = db.Where("user_id = ? AND type = ?", supplierUser.ID, models.NotifyProductApproved).First(&n).Error
		assert.NoError(t, err)
	})

	t.Run("Error - Reject requires reason", func(t *testing.T) {
		p := newPending("Gadget B")

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/reject", p.ID), map[string]interface{}{}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)
	})

	t.Run("Success - Reject stamps reason", func(t *testing.T) {
		p := newPending("Gadget C")

		body := map[string]interface{}{"reason": "Misleading description"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/reject", p.ID), body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductRejected, updated.Status)
		assert.Equal(t, "Misleading description", updated.RejectionReason)
	})

	t.Run("Success - Suspend and restore approved product", func(t *testing.T) {
		p := newPending("Gadget D")
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/approve", p.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		body := map[string]interface{}{"reason": "Reported by buyers"}
		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/suspend", p.ID), body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/restore", p.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductApproved, updated.Status)
		assert.Empty(t, updated.SuspensionReason)
	})

	t.Run("Success - Restoring rejected product requeues it for review", func(t *testing.T) {
		p := newPending("Gadget E")
		body := map[string]interface{}{"reason": "Bad photos"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/reject", p.ID), body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/restore", p.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductPending, updated.Status)
		assert.Empty(t, updated.RejectionReason)
		assert.Nil(t, updated.RejectedBy)
	})

	t.Run("Error - Cannot approve a draft", func(t *testing.T) {
		p := &models.Product{SupplierID: s.ID, Name: "Draft Item", Price: 5, Status: models.ProductDraft}
		db.Create(p)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/products/%d/approve", p.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})
}

func TestUpdateProductResetsApproval(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	u, s := testutils.CreateTestSupplier(t, db, "supplier@test.com", models.SupplierActive)
	token := testutils.GetAuthToken(t, u.ID, u.Role)

	t.Run("Editing approved product drops it back to pending", func(t *testing.T) {
		p := models.Product{SupplierID: s.ID, Name: "Live Item", Price: 9, Status: models.ProductApproved}
		db.Create(&p)

		body := map[string]interface{}{"price": 11.5}
		resp, err := testutils.MakeRequest(app, "PUT", fmt.Sprintf("/supplier/products/%d", p.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductPending, updated.Status)
		assert.Equal(t, 11.5, updated.Price)
		assert.Nil(t, updated.ReviewedBy)
	})

	t.Run("Editing a draft keeps it a draft", func(t *testing.T) {
		p := models.Product{SupplierID: s.ID, Name: "Draft Item", Price: 9, Status: models.ProductDraft}
		db.Create(&p)

		body := map[string]interface{}{"name": "Renamed Draft"}
		resp, err := testutils.MakeRequest(app, "PUT", fmt.Sprintf("/supplier/products/%d", p.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, p.ID)
		assert.Equal(t, models.ProductDraft, updated.Status)
	})
}

func TestPublicProductListing(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	_, activeSupplier := testutils.CreateTestSupplier(t, db, "active@test.com", models.SupplierActive)
	_, suspendedSupplier := testutils.CreateTestSupplier(t, db, "suspended@test.com", models.SupplierSuspended)

	db.Create(&models.Product{SupplierID: activeSupplier.ID, Name: "Visible", Price: 1, Status: models.ProductApproved})
	db.Create(&models.Product{SupplierID: activeSupplier.ID, Name: "Pending Item", Price: 1, Status: models.ProductPending})
	db.Create(&models.Product{SupplierID: suspendedSupplier.ID, Name: "Hidden By Supplier", Price: 1, Status: models.ProductApproved})

	t.Run("Only approved products from active suppliers", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/products", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		products, ok := result.Data.([]interface{})
		assert.True(t, ok)
		assert.Len(t, products, 1)
		assert.Equal(t, int64(1), result.Meta.Total)
	})

	t.Run("Keyword filter", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/products?q=Nothing", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Equal(t, int64(0), result.Meta.Total)
	})

	t.Run("Detail hides product of suspended supplier", func(t *testing.T) {
		var hidden models.Product
		db.Where("name = ?", "Hidden By Supplier").First(&hidden)

		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/products/%d", hidden.ID), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})

	t.Run("Detail increments view count", func(t *testing.T) {
		var visible models.Product
		db.Where("name = ?", "Visible").First(&visible)

		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/products/%d", visible.ID), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Product
		db.First(&updated, visible.ID)
		assert.Equal(t, int64(1), updated.ViewCount)
	})
}

func TestProductDeleteAndRecover(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	adminToken := testutils.GetAuthToken(t, admin.ID, admin.Role)

	u, s := testutils.CreateTestSupplier(t, db, "supplier@test.com", models.SupplierActive)
	token := testutils.GetAuthToken(t, u.ID, u.Role)

	t.Run("Supplier soft delete then recover", func(t *testing.T) {
		p := models.Product{SupplierID: s.ID, Name: "Comeback", Price: 2, Status: models.ProductApproved}
		db.Create(&p)

		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/supplier/products/%d", p.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var deleted models.Product
		db.First(&deleted, p.ID)
		assert.Equal(t, models.ProductDeleted, deleted.Status)

		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/supplier/products/%d/recover", p.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var recovered models.Product
		db.First(&recovered, p.ID)
		assert.Equal(t, models.ProductPending, recovered.Status)
	})

	t.Run("Admin hard delete releases category slot", func(t *testing.T) {
		cat := models.Category{Name: "Doomed", Active: true, ProductCount: 1}
		db.Create(&cat)

		p := models.Product{SupplierID: s.ID, CategoryID: &cat.ID, Name: "Gone", Price: 2, Status: models.ProductPending}
		db.Create(&p)

		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/admin/products/%d?hard=true", p.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 204, resp.Code)

		var count int64
		db.Model(&models.Product{}).Where("id = ?", p.ID).Count(&count)
		assert.Equal(t, int64(0), count)

		var updated models.Category
		db.First(&updated, cat.ID)
		assert.Equal(t, int64(0), updated.ProductCount)
	})
}
