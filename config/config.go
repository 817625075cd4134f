package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	BASE_URL    string
	CORS_ORIGIN string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_PRICE_ID       string

	TINYTOKEN_API_URL   string
	TINYTOKEN_ADMIN_KEY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	BASE_URL = getEnv("BASE_URL", "http://localhost:3000")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")
	STRIPE_PRICE_ID = mustEnv("STRIPE_PRICE_ID")

	TINYTOKEN_API_URL = getEnv("TINYTOKEN_API_URL", "https://api.tinytoken.org/api")
	TINYTOKEN_ADMIN_KEY = mustEnv("TINYTOKEN_ADMIN_KEY")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
