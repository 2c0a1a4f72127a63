package auth

import (
	"fmt"

	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrEmailNotVerified   = fmt.Errorf("email not verified")
)

// RegisterUser creates the user and its empty role profile in one transaction.
// An existing unverified user with the same email is superseded: the stale
// registration is hard-deleted so abandoning verification never locks an
// email address out.
func RegisterUser(email, password, role string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var u models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			if existing.EmailVerified {
				return fmt.Errorf("email already registered")
			}
			if err := deleteUserCascade(tx, &existing); err != nil {
				return err
			}
		}

		u = models.User{
			Email:    email,
			Password: hashedPassword,
			Role:     role,
			Provider: "local",
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		switch role {
		case models.RoleSupplier:
			supplier := models.Supplier{UserID: u.ID, Status: models.SupplierPendingApproval}
			if err := tx.Create(&supplier).Error; err != nil {
				return err
			}
		case models.RoleBuyer:
			buyer := models.Buyer{UserID: u.ID, Status: models.BuyerActive}
			if err := tx.Create(&buyer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// deleteUserCascade hard-deletes a user together with its profile row and
// outstanding tokens. Only used for superseding unverified registrations and
// admin user deletion.
func deleteUserCascade(tx *gorm.DB, u *models.User) error {
	switch u.Role {
	case models.RoleSupplier:
		if err := tx.Unscoped().Where("user_id = ?", u.ID).Delete(&models.Supplier{}).Error; err != nil {
			return err
		}
	case models.RoleBuyer:
		if err := tx.Unscoped().Where("user_id = ?", u.ID).Delete(&models.Buyer{}).Error; err != nil {
			return err
		}
	}

	tx.Where("user_id = ?", u.ID).Delete(&models.VerificationToken{})
	tx.Where("user_id = ?", u.ID).Delete(&models.ResetToken{})
	tx.Unscoped().Where("user_id = ?", u.ID).Delete(&models.RefreshToken{})

	return tx.Unscoped().Delete(u).Error
}

// LoginUser authenticates and returns an access/refresh token pair.
// Non-admin users must have verified their email address first; verified
// users carry approved=true (verification and approval are coupled here).
func LoginUser(email, password string) (string, string, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	if !user.EmailVerified && !user.IsAdmin() {
		return "", "", ErrEmailNotVerified
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
