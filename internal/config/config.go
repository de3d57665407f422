package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	UploadsDir        string
	FCMServiceAccount string
	Env               string
}

const devSecret = "dev-secret-change-me"

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "ascend.db"),
		JWTSecret:         getEnv("JWT_SECRET", devSecret),
		Port:              getEnv("PORT", "3001"),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
		Env:               getEnv("APP_ENV", "development"),
	}
}

// JWTSecret returns the signing secret without loading the full config, for
// middleware that only needs the key.
func JWTSecret() string {
	return getEnv("JWT_SECRET", devSecret)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
