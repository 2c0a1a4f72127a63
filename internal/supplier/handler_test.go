package supplier_test

import (
	"fmt"
	"testing"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/testutils"

	"github.com/stretchr/testify/assert"
)

// ========== SUPPLIER MODERATION TESTS ==========

func TestApproveSupplierHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	token := testutils.GetAuthToken(t, admin.ID, admin.Role)

	t.Run("Success - Approve pending supplier", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "pending@test.com", models.SupplierPendingApproval)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/approve", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierActive, updated.Status)
		assert.True(t, updated.Verified)
		assert.Empty(t, updated.RejectionReason)
	})

	t.Run("Success - Approval creates notification", func(t *testing.T) {
		u, s := testutils.CreateTestSupplier(t, db, "notify@test.com", models.SupplierPendingApproval)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/approve", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var n models.Notification
		err = db.Where("user_id = ? AND type = ?", u.ID, models.NotifyProfileApproved).First(&n).Error
		assert.NoError(t, err)
	})

	t.Run("Success - Approving suspended supplier lifts suspension", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "suspended@test.com", models.SupplierSuspended)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/approve", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierActive, updated.Status)
	})

	t.Run("Error - Cannot approve deleted supplier", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "deleted@test.com", models.SupplierDeleted)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/approve", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Supplier not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/admin/suppliers/99999/approve", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Non-admin cannot approve", func(t *testing.T) {
		buyerUser, _ := testutils.CreateTestBuyer(t, db, "buyer@test.com", models.BuyerActive)
		buyerToken := testutils.GetAuthToken(t, buyerUser.ID, buyerUser.Role)

		_, s := testutils.CreateTestSupplier(t, db, "pending2@test.com", models.SupplierPendingApproval)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/approve", s.ID), nil, buyerToken)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})
}

func TestRejectSupplierHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	token := testutils.GetAuthToken(t, admin.ID, admin.Role)

	t.Run("Success - Reject stamps reason and clears verified", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "reject@test.com", models.SupplierPendingApproval)

		body := map[string]interface{}{"reason": "Incomplete business registration"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/reject", s.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierRejected, updated.Status)
		assert.False(t, updated.Verified)
		assert.Equal(t, "Incomplete business registration", updated.RejectionReason)
		assert.NotNil(t, updated.RejectedBy)
		assert.NotNil(t, updated.RejectedAt)
	})

	t.Run("Error - Reason is required", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "reject2@test.com", models.SupplierPendingApproval)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/reject", s.ID), map[string]interface{}{}, token)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Cannot reject active supplier", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "active@test.com", models.SupplierActive)

		body := map[string]interface{}{"reason": "too late"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/reject", s.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
	})
}

func TestRestoreSupplierHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	token := testutils.GetAuthToken(t, admin.ID, admin.Role)

	t.Run("Success - Restore clears rejection metadata", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "rejected@test.com", models.SupplierPendingApproval)

		body := map[string]interface{}{"reason": "Missing documents"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/reject", s.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/restore", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierPendingApproval, updated.Status)
		assert.Empty(t, updated.RejectionReason)
		assert.Nil(t, updated.RejectedBy)
		assert.Nil(t, updated.RejectedAt)
	})

	t.Run("Error - Only rejected suppliers can be restored", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "active2@test.com", models.SupplierActive)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/restore", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
	})
}

func TestSuspendActivateSupplierHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	token := testutils.GetAuthToken(t, admin.ID, admin.Role)

	t.Run("Success - Suspend then activate round trip", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "cycle@test.com", models.SupplierActive)

		body := map[string]interface{}{"reason": "Policy violation"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/suspend", s.ID), body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var suspended models.Supplier
		db.First(&suspended, s.ID)
		assert.Equal(t, models.SupplierSuspended, suspended.Status)
		assert.Equal(t, "Policy violation", suspended.SuspensionReason)

		resp, err = testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/activate", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var active models.Supplier
		db.First(&active, s.ID)
		assert.Equal(t, models.SupplierActive, active.Status)
		assert.Empty(t, active.SuspensionReason)
		assert.Nil(t, active.SuspendedBy)
	})

	t.Run("Success - Activating active supplier is a no-op", func(t *testing.T) {
		u, s := testutils.CreateTestSupplier(t, db, "noop@test.com", models.SupplierActive)

		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/activate", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		// No notification fires for a no-op activation.
		var count int64
		db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", u.ID, models.NotifyProfileActivated).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestDeleteSupplierHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	admin := testutils.CreateTestUser(t, db, "admin@test.com", "password", models.RoleAdmin)
	token := testutils.GetAuthToken(t, admin.ID, admin.Role)

	t.Run("Success - Soft delete keeps row and products", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "del@test.com", models.SupplierActive)

		p := models.Product{SupplierID: s.ID, Name: "Widget", Price: 10, Status: models.ProductApproved}
		db.Create(&p)

		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/admin/suppliers/%d", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierDeleted, updated.Status)
		assert.False(t, updated.Verified)

		// The product row survives untouched.
		var kept models.Product
		assert.NoError(t, db.First(&kept, p.ID).Error)
		assert.Equal(t, models.ProductApproved, kept.Status)
	})

	t.Run("Error - Cannot delete twice", func(t *testing.T) {
		_, s := testutils.CreateTestSupplier(t, db, "del2@test.com", models.SupplierDeleted)

		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/admin/suppliers/%d", s.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
	})
}

func TestSupplierPublicListing(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	testutils.CreateTestSupplier(t, db, "active@test.com", models.SupplierActive)
	testutils.CreateTestSupplier(t, db, "pending@test.com", models.SupplierPendingApproval)
	testutils.CreateTestSupplier(t, db, "suspended@test.com", models.SupplierSuspended)

	t.Run("Public list only shows active suppliers", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/suppliers", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		suppliers, ok := result.Data.([]interface{})
		assert.True(t, ok)
		assert.Len(t, suppliers, 1)
	})

	t.Run("Public detail hides non-active supplier", func(t *testing.T) {
		var pending models.Supplier
		db.Where("status = ?", models.SupplierPendingApproval).First(&pending)

		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/suppliers/%d", pending.ID), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestSubmitOnboardingHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Submit queues profile and notifies admins", func(t *testing.T) {
		u, _ := testutils.CreateTestSupplier(t, db, "onboard@test.com", models.SupplierPendingApproval)
		token := testutils.GetAuthToken(t, u.ID, u.Role)

		body := map[string]interface{}{
			"company_name":          "Acme Exports",
			"business_registration": "BR-12345",
			"legal_entity_type":     "LLC",
			"address":               "1 Trade Street",
			"country":               "Germany",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/onboarding/submit", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.Where("user_id = ?", u.ID).First(&updated)
		assert.True(t, updated.OnboardingComplete)
		assert.Equal(t, "Acme Exports", updated.CompanyName)

		var n models.AdminNotification
		err = db.Where("type = ?", models.AdminNotifySupplierRegistration).First(&n).Error
		assert.NoError(t, err)
	})

	t.Run("Error - Missing required fields", func(t *testing.T) {
		u, _ := testutils.CreateTestSupplier(t, db, "onboard2@test.com", models.SupplierPendingApproval)
		token := testutils.GetAuthToken(t, u.ID, u.Role)

		body := map[string]interface{}{"company_name": "Half Done"}
		resp, err := testutils.MakeRequest(app, "POST", "/supplier/onboarding/submit", body, token)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Success - Resubmission after rejection clears rejection", func(t *testing.T) {
		admin := testutils.CreateTestUser(t, db, "admin-onboard@test.com", "password", models.RoleAdmin)
		adminToken := testutils.GetAuthToken(t, admin.ID, admin.Role)

		u, s := testutils.CreateTestSupplier(t, db, "resubmit@test.com", models.SupplierPendingApproval)
		token := testutils.GetAuthToken(t, u.ID, u.Role)

		body := map[string]interface{}{"reason": "Need more info"}
		resp, err := testutils.MakeRequest(app, "POST", fmt.Sprintf("/admin/suppliers/%d/reject", s.ID), body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		submitBody := map[string]interface{}{
			"company_name":          "Acme Exports",
			"business_registration": "BR-99999",
			"legal_entity_type":     "LLC",
			"address":               "1 Trade Street",
			"country":               "Germany",
		}
		resp, err = testutils.MakeRequest(app, "POST", "/supplier/onboarding/submit", submitBody, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.Supplier
		db.First(&updated, s.ID)
		assert.Equal(t, models.SupplierPendingApproval, updated.Status)
		assert.Empty(t, updated.RejectionReason)
	})
}
