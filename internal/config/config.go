// Package config loads the backend configuration from the environment.
package config

import "os"

type Config struct {
	// Database
	SQLiteDBPath string

	// Narrative report generator
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// CORS, space separated list of allowed origins
	CORSAllowOrigins string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		SQLiteDBPath:     getEnv("SQLITE_DB_PATH", "data/gorm.db?_pragma=foreign_keys(1)"),
		GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
		GroqModel:        getEnv("GROQ_MODEL", ""),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", ""),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
