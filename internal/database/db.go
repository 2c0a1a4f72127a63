package database

import (
	"fmt"
	"log"

	"github.com/tradelink/marketplace/internal/config"
	"github.com/tradelink/marketplace/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	DB = db

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := models.EnsureEnums(db); err != nil {
		log.Fatal("failed to create enums:", err)
	}
	err := db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.ResetToken{},
		&models.RefreshToken{},
		&models.Supplier{},
		&models.Buyer{},
		&models.Category{},
		&models.Product{},
		&models.Inquiry{},
		&models.SavedProduct{},
		&models.FollowedSupplier{},
		&models.Notification{},
		&models.AdminNotification{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database migrated successfully!")
	return nil
}
