package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenExpiry    time.Duration
	LogLevel       string
	AllowedOrigins []string
	AuditSchedule  string
	StoreDriver    string
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	expiry, err := time.ParseDuration(getEnv("TOKEN_EXPIRY", "24h"))
	if err != nil {
		logrus.WithError(err).Warn("Invalid TOKEN_EXPIRY, defaulting to 24h")
		expiry = 24 * time.Hour
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("MONGO_DB", "skill_sharing"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenExpiry:    expiry,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		AuditSchedule:  lookupEnv("AUDIT_SCHEDULE", "@daily"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupEnv differs from getEnv in that an explicitly empty value is kept.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
