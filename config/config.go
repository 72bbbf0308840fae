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
	Env       string
	DBName    string
	JWTKey    string
	SaltRound int

	BackendURL     string // Base URL of the AI course-generation backend
	BackendTimeout int    // Seconds to wait for generation/evaluation calls

	SendgridKey string
	EmailSender string
	BaseURL     string // Public URL of this app, used in email links

	ProgressFile string // Local progress key-value file for anonymous sessions
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
		Env:       getEnv("APP_ENV", "development"),
		DBName:    getEnv("DB_NAME", "claritas.db"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		BackendURL:     getEnv("BACKEND_URL", "http://127.0.0.1:5000"),
		BackendTimeout: getEnvInt("BACKEND_TIMEOUT_SECONDS", 90),

		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@claritaslearning.app"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),

		ProgressFile: getEnv("PROGRESS_FILE", "data/progress.json"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Outgoing email is disabled.")
	}
}

// IsProduction reports whether the app runs with production settings
func IsProduction() bool {
	return AppConfig != nil && AppConfig.Env == "production"
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
