package main

import (
	"log"
	"os"
	"time"

	"github.com/tradelink/marketplace/internal/config"
	"github.com/tradelink/marketplace/internal/database"
	"github.com/tradelink/marketplace/internal/mailer"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/seed"
	"github.com/tradelink/marketplace/internal/server"
	"github.com/tradelink/marketplace/internal/utils"

	"github.com/getsentry/sentry-go"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== ERROR TRACKING ==========
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Println("⚠️  Sentry initialization failed:", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Println("✅ Sentry initialized")
		}
	}

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== SEED DEFAULT DATA ==========
	if err := seed.SeedAdmin(cfg); err != nil {
		log.Println("⚠️  Failed to seed admin account:", err)
	} else {
		log.Println("✅ Admin account ready")
	}

	// ========== MAILER ==========
	mailer.Init(cfg)
	log.Println("✅ Mailer configured")

	// ========== BACKGROUND JOBS ==========
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			result := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.VerificationToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired verification tokens", result.RowsAffected)
			}

			result = database.DB.Where("expires_at < ?", time.Now()).Delete(&models.ResetToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired reset tokens", result.RowsAffected)
			}

			result = database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired refresh tokens", result.RowsAffected)
			}
		}
	}()

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 Marketplace API starting on %s", cfg.ServerAddr)
	log.Printf("📚 Health check: %s/health", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
