package auth

import (
	"time"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/mailer"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/response"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" || body.Role == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
			"role":     "role is required",
		})
	}

	if body.Role != models.RoleBuyer && body.Role != models.RoleSupplier {
		return response.ValidationError(c, map[string]string{
			"role": "role must be buyer or supplier",
		})
	}

	if len(body.Password) < 8 {
		return response.ValidationError(c, map[string]string{
			"password": "password must be at least 8 characters",
		})
	}

	u, err := RegisterUser(body.Email, body.Password, body.Role)
	if err != nil {
		if err.Error() == "email already registered" {
			return response.Conflict(c, "Email already registered")
		}
		return response.InternalError(c, "Failed to create account")
	}

	token, err := utils.GenerateVerificationToken(u.ID)
	if err != nil {
		return response.InternalError(c, "Failed to issue verification token")
	}

	warning := mailer.SendVerificationEmail(u.Email, token)

	data := fiber.Map{"user": u}
	if warning != "" {
		return response.SuccessWithWarning(c, data, "Registration successful, please verify your email", warning)
	}
	return response.Created(c, data, "Registration successful, please verify your email")
}

func VerifyEmailHandler(c *fiber.Ctx) error {
	var body struct {
		Token string `json:"token"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Token == "" {
		return response.ValidationError(c, map[string]string{"token": "token is required"})
	}

	var vt models.VerificationToken
	if err := database.DB.Where("token_hash = ?", utils.HashToken(body.Token)).First(&vt).Error; err != nil {
		return response.BadRequest(c, "Invalid or expired token", nil)
	}

	if vt.ExpiresAt.Before(time.Now()) {
		database.DB.Delete(&vt)
		return response.BadRequest(c, "Token expired", nil)
	}

	var user models.User
	if err := database.DB.First(&user, vt.UserID).Error; err != nil {
		return response.NotFound(c, "User")
	}

	// Verification doubles as approval: there is no separate approval queue
	// for user accounts, only for supplier profiles.
	user.EmailVerified = true
	user.Approved = true
	if err := database.DB.Save(&user).Error; err != nil {
		return response.InternalError(c, "Failed to verify email")
	}

	database.DB.Delete(&vt)

	return response.Success(c, nil, "Email verified successfully")
}

func ResendVerificationHandler(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Email == "" {
		return response.ValidationError(c, map[string]string{"email": "email is required"})
	}

	var user models.User
	if err := database.DB.Where("email = ? AND email_verified = ?", body.Email, false).First(&user).Error; err != nil {
		// Do not reveal whether the address exists.
		return response.Success(c, nil, "If the account exists, a verification email has been sent")
	}

	token, err := utils.GenerateVerificationToken(user.ID)
	if err != nil {
		return response.InternalError(c, "Failed to issue verification token")
	}

	if warning := mailer.SendVerificationEmail(user.Email, token); warning != "" {
		return response.SuccessWithWarning(c, nil, "If the account exists, a verification email has been sent", warning)
	}
	return response.Success(c, nil, "If the account exists, a verification email has been sent")
}

func LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
	}

	accessToken, refreshToken, err := LoginUser(body.Email, body.Password)
	if err != nil {
		if err == ErrEmailNotVerified {
			return response.Forbidden(c, "Email not verified, please check your inbox")
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	return response.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    900,
	}, "Login successful")
}

func RefreshHandler(c *fiber.Ctx) error {
	var body struct {
		UserID       uint   `json:"user_id"`
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.UserID == 0 || body.RefreshToken == "" {
		return response.ValidationError(c, map[string]string{
			"user_id":       "user_id is required",
			"refresh_token": "refresh_token is required",
		})
	}

	accessToken, newRefreshToken, err := utils.RefreshTokenPair(body.UserID, body.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, err.Error())
	}

	var user models.User
	database.DB.First(&user, body.UserID)

	return response.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          user,
		"expires_in":    900,
	}, "Token refreshed successfully")
}

func LogoutHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true)

	return response.Success(c, fiber.Map{"user_id": userID}, "Logout successful")
}

func ForgotPasswordHandler(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" {
		return response.ValidationError(c, map[string]string{
			"email": "email is required",
		})
	}

	var user models.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		return response.Success(c, nil, "If account exists, reset link has been sent")
	}

	plainToken := utils.RandomString(48)
	reset := models.ResetToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(plainToken),
		ExpiresAt: time.Now().Add(utils.ResetTokenTTL),
	}

	if err := database.DB.Create(&reset).Error; err != nil {
		return response.InternalError(c, "Failed to save reset token")
	}

	if warning := mailer.SendResetEmail(user.Email, plainToken); warning != "" {
		return response.SuccessWithWarning(c, nil, "If account exists, reset link has been sent", warning)
	}
	return response.Success(c, nil, "If account exists, reset link has been sent")
}

func ResetPasswordHandler(c *fiber.Ctx) error {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Token == "" || body.NewPassword == "" {
		return response.ValidationError(c, map[string]string{
			"token":        "token is required",
			"new_password": "new_password is required",
		})
	}

	var reset models.ResetToken
	if err := database.DB.Where("token_hash = ?", utils.HashToken(body.Token)).First(&reset).Error; err != nil {
		return response.BadRequest(c, "Invalid or expired token", nil)
	}

	if reset.ExpiresAt.Before(time.Now()) {
		database.DB.Delete(&reset)
		return response.BadRequest(c, "Token expired", nil)
	}

	var user models.User
	if err := database.DB.First(&user, reset.UserID).Error; err != nil {
		return response.NotFound(c, "User")
	}

	hashedPassword, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}
	user.Password = hashedPassword
	database.DB.Save(&user)

	database.DB.Delete(&reset)

	return response.Success(c, nil, "Password reset successful")
}

func MeHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User")
	}

	return response.Success(c, user, "User retrieved successfully")
}
