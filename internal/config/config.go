package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// A local .env is a development convenience; absent in production.
	_ = godotenv.Load()

	return &Config{
		Port:               getenv("PORT", "8080"),
		MongoURI:           getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:            getenv("MONGO_DB", "eventhub"),
		RedisAddr:          getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		JWTSecret:          getenv("JWT_SECRET", ""),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getenv("GOOGLE_CALLBACK_URL", "http://localhost:8080/api/users/google/redirect"),
		CORSOrigins:        []string{getenv("CORS_ORIGIN", "http://localhost:3000")},
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
