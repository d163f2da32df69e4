package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port              string
	BaseURL           string
	DBDriver          string // "mysql" or "sqlite"
	DBDSN             string
	JWTSecret         string
	GeminiAPIKey      string
	AllowRegistration bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DBDSN:             getEnv("DB_DSN", ""),
		JWTSecret:         getEnv("JWT_SECRET", "sonakshi_dev_secret_change_me"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		AllowRegistration: getEnv("ALLOW_REGISTRATION", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
