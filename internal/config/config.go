package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	AppURL     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AdminEmail    string
	AdminPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Secondary provider, tried once when the primary fails.
	SMTPFallbackHost     string
	SMTPFallbackPort     string
	SMTPFallbackUser     string
	SMTPFallbackPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		AppURL:     getEnv("APP_URL", "http://localhost:3000"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "marketplace"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@tradelink.example"),

		SMTPFallbackHost:     getEnv("SMTP_FALLBACK_HOST", ""),
		SMTPFallbackPort:     getEnv("SMTP_FALLBACK_PORT", "587"),
		SMTPFallbackUser:     getEnv("SMTP_FALLBACK_USER", ""),
		SMTPFallbackPassword: getEnv("SMTP_FALLBACK_PASSWORD", ""),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
