package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	// Payment provider webhook settings
	WebhookSecret           string
	WebhookToleranceSeconds int
	PlatformFeeRate         string // decimal string, e.g. "0.15"
	EventRetentionDays      int    // must cover the provider's max redelivery window

	// Notification service (student-facing emails are delegated to it)
	NotifyApiURL string
	NotifyApiKey string

	// SendGrid (operational alerts)
	SendGridApiKey   string
	EmailSender      string
	ReviewAlertEmail string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "lms.db"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		WebhookSecret:           getEnv("WEBHOOK_SECRET", "defaultSecret"),
		WebhookToleranceSeconds: getEnvInt("WEBHOOK_TOLERANCE_SECONDS", 300),
		PlatformFeeRate:         getEnv("PLATFORM_FEE_RATE", "0.15"),
		EventRetentionDays:      getEnvInt("EVENT_RETENTION_DAYS", 90),

		NotifyApiURL: getEnv("NOTIFY_API_URL", "http://localhost:4100/v1/notify"),
		NotifyApiKey: getEnv("NOTIFY_API_KEY", ""),

		SendGridApiKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", "noreply@example.com"),
		ReviewAlertEmail: getEnv("REVIEW_ALERT_EMAIL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WebhookSecret == "defaultSecret" {
		log.Println("Warning: Using default WEBHOOK_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
