package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/server"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.ResetToken{},
		&models.RefreshToken{},
		&models.Supplier{},
		&models.Buyer{},
		&models.SavedProduct{},
		&models.FollowedSupplier{},
		&models.Category{},
		&models.Product{},
		&models.Inquiry{},
		&models.Notification{},
		&models.AdminNotification{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	app := server.New(db)
	return app
}

func CreateTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	hashedPassword, _ := utils.HashPassword(password)

	user := &models.User{
		Email:         email,
		Password:      hashedPassword,
		Role:          role,
		Provider:      "local",
		EmailVerified: true,
		Approved:      true,
	}

	err := db.Create(user).Error
	assert.NoError(t, err, "Failed to create test user")

	return user
}

// CreateTestSupplier creates a verified user plus its supplier profile in the
// given status.
func CreateTestSupplier(t *testing.T, db *gorm.DB, email string, status models.SupplierStatus) (*models.User, *models.Supplier) {
	user := CreateTestUser(t, db, email, "password123", models.RoleSupplier)

	supplier := &models.Supplier{
		UserID:      user.ID,
		CompanyName: "Test Trading Co",
		Status:      status,
		Verified:    status == models.SupplierActive,
	}
	err := db.Create(supplier).Error
	assert.NoError(t, err, "Failed to create test supplier")

	return user, supplier
}

func CreateTestBuyer(t *testing.T, db *gorm.DB, email string, status models.BuyerStatus) (*models.User, *models.Buyer) {
	user := CreateTestUser(t, db, email, "password123", models.RoleBuyer)

	buyer := &models.Buyer{
		UserID:      user.ID,
		CompanyName: "Test Imports Ltd",
		ContactName: "Test Buyer",
		Status:      status,
	}
	err := db.Create(buyer).Error
	assert.NoError(t, err, "Failed to create test buyer")

	return user, buyer
}

func GetAuthToken(t *testing.T, userID uint, role string) string {
	token, err := utils.GenerateJWT(userID, role)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Warning string       `json:"warning"`
	Error   *ErrorDetail `json:"error"`
	Meta    *Meta        `json:"meta"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
}
