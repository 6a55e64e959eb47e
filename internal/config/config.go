package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database. Empty means demo mode: the report store serves the
	// built-in seed dataset and nothing is persisted.
	DatabaseURL string

	// Redis
	RedisURL string

	// Admin JWT
	JWTSecret   string
	AdminJWTTTL time.Duration

	// Bootstrap admin, used in demo mode when no admin table exists
	AdminEmail    string
	AdminPassword string

	// CORS
	AllowedOrigins []string

	// Evidence storage (R2)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string

	// Geocoding
	GeocoderBaseURL string

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Admin JWT
		JWTSecret:   getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminJWTTTL: parseDuration(getEnv("ADMIN_JWT_TTL", "24h"), 24*time.Hour),

		// Bootstrap admin
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@scamsentry.dev"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// Evidence storage
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", "scamsentry-evidence"),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),

		// Geocoding
		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DemoMode reports whether the service should run from the built-in
// seed dataset instead of a live database.
func (c *Config) DemoMode() bool {
	return c.DatabaseURL == ""
}
