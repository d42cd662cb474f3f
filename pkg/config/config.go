package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Environment string
	Timezone    string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret    string
	JWTExpiresIn string

	// Session
	SessionSecret string

	// Security
	CookieSecure string

	// Local settings persistence
	SettingsFile string

	// Remote write queue
	WriteWorkers     int
	WriteMaxAttempts int
	WriteBackoffMS   int

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// GCP Storage
	GCPBucketName                string
	GoogleApplicationCredentials string

	// Firebase Cloud Messaging
	FCMTopic string

	// RabbitMQ kitchen feed
	RabbitMQURL     string
	KitchenExchange string

	// Mobile Auth
	EnableMobileTokenReturn string

	// Allowed Origins
	AllowedOrigins string
}

var AppConfig *Config

// LoadConfig loads environment variables into Config struct
func LoadConfig() {
	// Load .env file if it exists (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:                         getEnv("PORT", "5500"),
		Environment:                  getEnv("NODE_ENV", "development"),
		Timezone:                     getEnv("TIMEZONE", "Local"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		JWTSecret:                    getEnv("JWT_SECRET", ""),
		JWTExpiresIn:                 getEnv("JWT_EXPIRES_IN", "7d"),
		SessionSecret:                getEnv("SESSION_SECRET", ""),
		CookieSecure:                 getEnv("COOKIE_SECURE", "false"),
		SettingsFile:                 getEnv("SETTINGS_FILE", "settings.json"),
		WriteWorkers:                 getEnvInt("WRITE_WORKERS", 4),
		WriteMaxAttempts:             getEnvInt("WRITE_MAX_ATTEMPTS", 5),
		WriteBackoffMS:               getEnvInt("WRITE_BACKOFF_MS", 200),
		GeminiAPIKey:                 getEnv("GEMINI_API_KEY", ""),
		GeminiModel:                  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GCPBucketName:                getEnv("GCP_BUCKET_NAME", ""),
		GoogleApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FCMTopic:                     getEnv("FCM_TOPIC", "floor-staff"),
		RabbitMQURL:                  getEnv("RABBITMQ_URL", ""),
		KitchenExchange:              getEnv("KITCHEN_EXCHANGE", "kitchen_topic"),
		EnableMobileTokenReturn:      getEnv("ENABLE_MOBILE_TOKEN_RETURN", "false"),
		AllowedOrigins:               getEnv("ALLOWED_ORIGINS", ""),
	}

	// Validate required config
	if AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if AppConfig.SessionSecret == "" {
		// The cookie store refuses an empty key; reuse the JWT secret.
		AppConfig.SessionSecret = AppConfig.JWTSecret
	}

	log.Println("✅ Configuration loaded successfully")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// IsProduction returns true if running in production mode
func IsProduction() bool {
	return AppConfig.Environment == "production"
}

// IsDevelopment returns true if running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development" || AppConfig.Environment == ""
}

// Location resolves the configured business timezone used for day and hour buckets.
func Location() *time.Location {
	if AppConfig == nil || AppConfig.Timezone == "" || AppConfig.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown TIMEZONE %q, falling back to local time", AppConfig.Timezone)
		return time.Local
	}
	return loc
}

// WriteBackoff is the base delay between remote write retries.
func WriteBackoff() time.Duration {
	return time.Duration(AppConfig.WriteBackoffMS) * time.Millisecond
}
