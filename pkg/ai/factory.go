package ai

import (
	"context"
	"fmt"

	"meddigest-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string // optional; empty lets the service pick one

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewGenerator creates a Generator based on the config.
// This is the factory function - switch AI provider by changing cfg.Provider.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return gemini.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// Default to Gemini if API key is available, otherwise Ollama.
		// Neither configured is an explicit disabled state, not a guess.
		if cfg.GeminiAPIKey != "" {
			return gemini.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		}
		if cfg.OllamaBaseURL != "" {
			return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil
		}
		return nil, fmt.Errorf("no AI provider configured")
	}
}
