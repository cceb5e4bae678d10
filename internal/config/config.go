package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AuthMode selects the deployment's trust model for submitter identity.
const (
	AuthModeAccounts = "accounts" // persistent user accounts
	AuthModeGuest    = "guest"    // ephemeral signed session ids
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseDSN    string
	UploadDir      string
	MaxUploadBytes int64
	BaseURL        string

	SecretKey    string
	AuthMode     string
	DeleteWindow time.Duration

	PhotoWidth  int
	PhotoHeight int
	JPEGQuality int

	QRLevel string
	QRSize  int

	MapsAPIKey string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		DatabaseDSN:    getEnvWithDefault("DATABASE_DSN", "waypoint.db"),
		UploadDir:      getEnvWithDefault("UPLOAD_DIR", "static/uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 16<<20),
		BaseURL:        getEnvWithDefault("BASE_URL", "http://localhost:8080"),

		SecretKey:    os.Getenv("SECRET_KEY"),
		AuthMode:     getEnvWithDefault("AUTH_MODE", AuthModeAccounts),
		DeleteWindow: getEnvDuration("DELETE_WINDOW", 5*time.Minute),

		PhotoWidth:  int(getEnvInt64("PHOTO_WIDTH", 1200)),
		PhotoHeight: int(getEnvInt64("PHOTO_HEIGHT", 800)),
		JPEGQuality: int(getEnvInt64("JPEG_QUALITY", 85)),

		QRLevel: getEnvWithDefault("QR_LEVEL", "medium"),
		QRSize:  int(getEnvInt64("QR_SIZE", 256)),

		MapsAPIKey: os.Getenv("MAPS_API_KEY"),
	}

	// Validate required fields
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.AuthMode != AuthModeAccounts && cfg.AuthMode != AuthModeGuest {
		return nil, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeAccounts, AuthModeGuest, cfg.AuthMode)
	}
	if cfg.DeleteWindow <= 0 {
		return nil, fmt.Errorf("DELETE_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
