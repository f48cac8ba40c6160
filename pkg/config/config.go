package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabasePath  string
	AIProvider    string
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
	NewsFeedURL   string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	apiKey := getEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		// Older deployments configured the key under the Google SDK name
		apiKey = getEnv("GOOGLE_API_KEY", "")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "med_digest.db"),
		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:  apiKey,
		GeminiModel:   getEnv("GEMINI_MODEL", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:   getEnv("OLLAMA_MODEL", ""),
		NewsFeedURL:   getEnv("NEWS_FEED_URL", "https://rss.nytimes.com/services/xml/rss/nyt/Health.xml"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
