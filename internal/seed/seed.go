package seed

import (
	"fmt"
	"log"

	"github.com/tradelink/marketplace/internal/config"
	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/utils"
)

// SeedAdmin creates the administrator account from ADMIN_EMAIL/ADMIN_PASSWORD.
// The admin is always verified and approved; it never enters a review queue.
func SeedAdmin(cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	var existing models.User
	if err := database.DB.Where("email = ? AND role = ?", cfg.AdminEmail, models.RoleAdmin).First(&existing).Error; err == nil {
		log.Println("⏭️  Admin account already exists")
		return nil
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:         cfg.AdminEmail,
		Password:      hashed,
		Role:          models.RoleAdmin,
		Approved:      true,
		EmailVerified: true,
	}

	return database.DB.Create(&admin).Error
}
