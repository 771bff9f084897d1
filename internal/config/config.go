package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	StripeSecretKey string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	// LegacyStatusCodes restores the status codes of the original API
	// (403 on duplicate user, 401 on some ownership mismatches) for
	// clients that depend on them.
	LegacyStatusCodes bool
}

// Load reads configuration from the environment, optionally seeded by a
// .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("ACCESS_TOKEN")
	if secret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN is required")
	}

	return &Config{
		Port:              getEnv("PORT", "5000"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("DB_NAME", "LingoVerseDB"),
		JWTSecret:         secret,
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:    getEnv("MINIO_SECRET_KEY", "minioadmin"),
		LegacyStatusCodes: os.Getenv("LEGACY_STATUS_CODES") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
