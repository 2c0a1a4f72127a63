package auth_test

import (
	"testing"
	"time"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/testutils"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/stretchr/testify/assert"
)

// ========== REGISTRATION ==========

func TestRegisterHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Supplier registration creates pending profile", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "supplier@test.com",
			"password": "password123",
			"role":     "supplier",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		// Email delivery is unconfigured in tests, so the handler reports a
		// warning instead of a clean 201.
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Warning)

		var user models.User
		assert.NoError(t, db.Where("email = ?", "supplier@test.com").First(&user).Error)
		assert.False(t, user.EmailVerified)

		var supplier models.Supplier
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&supplier).Error)
		assert.Equal(t, models.SupplierPendingApproval, supplier.Status)
	})

	t.Run("Success - Buyer registration creates active profile", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "buyer@test.com",
			"password": "password123",
			"role":     "buyer",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var user models.User
		assert.NoError(t, db.Where("email = ?", "buyer@test.com").First(&user).Error)

		var buyer models.Buyer
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&buyer).Error)
		assert.Equal(t, models.BuyerActive, buyer.Status)
	})

	t.Run("Error - Admin role cannot be self-assigned", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "evil@test.com",
			"password": "password123",
			"role":     "admin",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)
	})

	t.Run("Error - Short password", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "short@test.com",
			"password": "short",
			"role":     "buyer",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)
	})
}

func TestRegisterDuplicates(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Error - Verified email conflicts", func(t *testing.T) {
		testutils.CreateTestUser(t, db, "taken@test.com", "password123", models.RoleBuyer)

		body := map[string]interface{}{
			"email":    "taken@test.com",
			"password": "password123",
			"role":     "buyer",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Success - Unverified registration is superseded", func(t *testing.T) {
		stale := &models.User{
			Email: "retry@test.com", Password: "x", Role: models.RoleBuyer,
			Provider: "local", EmailVerified: false,
		}
		db.Create(stale)
		db.Create(&models.Buyer{UserID: stale.ID, Status: models.BuyerActive})

		body := map[string]interface{}{
			"email":    "retry@test.com",
			"password": "password123",
			"role":     "supplier",
		}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		// The stale account is gone; exactly one user holds the email now.
		var count int64
		db.Unscoped().Model(&models.User{}).Where("email = ?", "retry@test.com").Count(&count)
		assert.Equal(t, int64(1), count)

		var fresh models.User
		db.Where("email = ?", "retry@test.com").First(&fresh)
		assert.NotEqual(t, stale.ID, fresh.ID)
		assert.Equal(t, models.RoleSupplier, fresh.Role)
	})
}

// ========== EMAIL VERIFICATION ==========

func TestVerifyEmailHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Verification approves the account", func(t *testing.T) {
		user := &models.User{Email: "verify@test.com", Password: "x", Role: models.RoleBuyer, Provider: "local"}
		db.Create(user)

		token, err := utils.GenerateVerificationToken(user.ID)
		assert.NoError(t, err)

		resp, err := testutils.MakeRequest(app, "POST", "/auth/verify-email",
			map[string]interface{}{"token": token}, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.User
		db.First(&updated, user.ID)
		assert.True(t, updated.EmailVerified)
		assert.True(t, updated.Approved)

		// Token is single use.
		resp, err = testutils.MakeRequest(app, "POST", "/auth/verify-email",
			map[string]interface{}{"token": token}, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Expired token", func(t *testing.T) {
		user := &models.User{Email: "expired@test.com", Password: "x", Role: models.RoleBuyer, Provider: "local"}
		db.Create(user)

		plain := utils.RandomString(48)
		db.Create(&models.VerificationToken{
			UserID:    user.ID,
			TokenHash: utils.HashToken(plain),
			ExpiresAt: time.Now().Add(-time.Hour),
		})

		resp, err := testutils.MakeRequest(app, "POST", "/auth/verify-email",
			map[string]interface{}{"token": plain}, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Garbage token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/auth/verify-email",
			map[string]interface{}{"token": "nope"}, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

// ========== LOGIN ==========

func TestLoginHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Verified user logs in", func(t *testing.T) {
		testutils.CreateTestUser(t, db, "login@test.com", "password123", models.RoleBuyer)

		body := map[string]interface{}{"email": "login@test.com", "password": "password123"}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data, ok := result.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
	})

	t.Run("Error - Unverified user is refused with 403", func(t *testing.T) {
		hashed, _ := utils.HashPassword("password123")
		db.Create(&models.User{
			Email: "unverified@test.com", Password: hashed, Role: models.RoleBuyer,
			Provider: "local", EmailVerified: false,
		})

		body := map[string]interface{}{"email": "unverified@test.com", "password": "password123"}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)

		testutils.AssertError(t, resp, "FORBIDDEN")
	})

	t.Run("Error - Wrong password", func(t *testing.T) {
		body := map[string]interface{}{"email": "login@test.com", "password": "wrong"}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

// ========== PASSWORD RESET ==========

func TestPasswordReset(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Forgot password does not reveal accounts", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/auth/forgot-password",
			map[string]interface{}{"email": "ghost@test.com"}, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Reset with valid token changes password", func(t *testing.T) {
		user := testutils.CreateTestUser(t, db, "reset@test.com", "oldpassword", models.RoleBuyer)

		plain := utils.RandomString(48)
		db.Create(&models.ResetToken{
			UserID:    user.ID,
			TokenHash: utils.HashToken(plain),
			ExpiresAt: time.Now().Add(time.Hour),
		})

		resp, err := testutils.MakeRequest(app, "POST", "/auth/reset-password",
			map[string]interface{}{"token": plain, "new_password": "newpassword"}, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var updated models.User
		db.First(&updated, user.ID)
		assert.True(t, utils.CheckPasswordHash("newpassword", updated.Password))
	})
}

// ========== REFRESH / LOGOUT ==========

func TestRefreshHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	user := testutils.CreateTestUser(t, db, "tokens@test.com", "password123", models.RoleBuyer)

	t.Run("Refresh rotates the token pair", func(t *testing.T) {
		refreshToken, err := utils.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)

		body := map[string]interface{}{"user_id": user.ID, "refresh_token": refreshToken}
		resp, err := testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		// The old refresh token is revoked after use.
		resp, err = testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	user := testutils.CreateTestUser(t, db, "logout@test.com", "password123", models.RoleBuyer)

	t.Run("Logout revokes outstanding refresh tokens", func(t *testing.T) {
		refreshToken, err := utils.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)

		token := testutils.GetAuthToken(t, user.ID, user.Role)
		resp, err := testutils.MakeRequest(app, "POST", "/auth/logout", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		body := map[string]interface{}{"user_id": user.ID, "refresh_token": refreshToken}
		resp, err = testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}
