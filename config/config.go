package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender    string
	Password       string // SMTP app password
	SendGridApiKey string // Preferred over SMTP when set

	PaymentSuccessRate   float64 // Simulated gateway approval rate (0..1)
	PaymentProcessingMs  int     // Simulated gateway latency in milliseconds
	PaymentWebhookURL    string  // Optional URL notified on terminal payment states
	PaymentPendingTTLHrs int     // PENDING payments older than this get auto-cancelled
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
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:    getEnv("EMAIL_SENDER", ""),
		Password:       getEnv("PASSWORD", ""),
		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),

		PaymentSuccessRate:   getEnvFloat("PAYMENT_SUCCESS_RATE", 0.9),
		PaymentProcessingMs:  getEnvInt("PAYMENT_PROCESSING_MS", 2000),
		PaymentWebhookURL:    getEnv("PAYMENT_WEBHOOK_URL", ""),
		PaymentPendingTTLHrs: getEnvInt("PAYMENT_PENDING_TTL_HOURS", 24),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentSuccessRate < 0 || AppConfig.PaymentSuccessRate > 1 {
		log.Printf("Warning: PAYMENT_SUCCESS_RATE %v out of range, falling back to 0.9", AppConfig.PaymentSuccessRate)
		AppConfig.PaymentSuccessRate = 0.9
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

// getEnvFloat retrieves an environment variable as a float or returns the default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
