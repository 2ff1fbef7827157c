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

	FrontendURL string
	BackendURL  string

	UddoktaPayApiKey  string
	UddoktaPayBaseURL string

	// Pending enrollments older than this many hours get cancelled by the reaper
	PendingPaymentTTLHours int
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

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3000"),

		UddoktaPayApiKey:  getEnv("UDDOKTAPAY_API_KEY", "defaultSecret"),
		UddoktaPayBaseURL: getEnv("UDDOKTAPAY_BASE_URL", "https://sandbox.uddoktapay.com/api"),

		PendingPaymentTTLHours: getEnvInt("PENDING_PAYMENT_TTL_HOURS", 48),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.UddoktaPayApiKey == "defaultSecret" {
		log.Println("Warning: Using default UDDOKTAPAY_API_KEY. Update it in your environment.")
	}
}

// PaymentSuccessURL is where the gateway redirects the payer after a successful checkout
func (c *Config) PaymentSuccessURL() string {
	return c.FrontendURL + "/payment/success"
}

// PaymentCancelURL is where the gateway sends the payer on cancel
func (c *Config) PaymentCancelURL() string {
	return c.FrontendURL + "/payment/cancel"
}

// PaymentWebhookURL is the asynchronous callback endpoint the gateway posts to
func (c *Config) PaymentWebhookURL() string {
	return c.BackendURL + "/payment/webhook"
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
