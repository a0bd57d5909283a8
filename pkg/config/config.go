// Package config reads application configuration from environment
// variables, with .env file support for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Categorize CategorizeConfig
	Gemini     GeminiConfig
}

// CategorizeConfig tunes the categorization chain.
type CategorizeConfig struct {
	FuzzyThreshold int  // minimum fuzzy similarity score (0-100)
	EnableAI       bool // use the generative model for unresolved rows
}

// GeminiConfig carries the Google Gemini credentials.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Categorize: CategorizeConfig{
			FuzzyThreshold: getEnvAsInt("FUZZY_MATCH_THRESHOLD", 80),
			EnableAI:       getEnvAsBool("ENABLE_AI_FALLBACK", true),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
