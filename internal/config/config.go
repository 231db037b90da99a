package config

import (
	"os"
)

type Config struct {
	Port         string
	DatabaseFile string
	LogLevel     string

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Gemini
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Upload limits
	MaxFileSize int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseFile:      getEnv("DATABASE_FILE", "data/contracts.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "contracts"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		MaxFileSize:       5 * 1024 * 1024,
	}

	// GEMINI_API_KEY is optional: without it the service still runs and
	// analysis degrades to the rule-based checklist only.
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
