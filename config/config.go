package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// App holds the active configuration after LoadConfig.
var App *Config

// Defaults for the activation window and wallet seeding. Overridable via env
// so staging can rehearse the launch without touching code.
const (
	DefaultActivationDate = "2026-04-18T23:59:00-04:00"
	DefaultExpiryDays     = 30
	DefaultStartingPoints = 100
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
	Env        string

	AdminSecret    string
	ActivationDate time.Time
	ExpiryDays     int
	StartingPoints int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),
	}

	activationRaw := os.Getenv("ACTIVATION_DATE")
	if activationRaw == "" {
		activationRaw = DefaultActivationDate
	}
	activationDate, err := time.Parse(time.RFC3339, activationRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVATION_DATE %q: %v", activationRaw, err)
	}
	config.ActivationDate = activationDate

	config.ExpiryDays = intFromEnv("EXPIRY_DAYS", DefaultExpiryDays)
	config.StartingPoints = intFromEnv("STARTING_POINTS", DefaultStartingPoints)

	App = config
	return config, nil
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
