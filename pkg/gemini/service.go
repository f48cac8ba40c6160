package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// preferredModels is checked in order during startup model selection.
var preferredModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// Service implements the ai.Generator interface using the Gemini API.
type Service struct {
	client *genai.Client
	model  string
}

// NewService creates a Gemini service. When model is empty the available
// models are listed and the first preferred generateContent-capable one is
// selected.
func NewService(ctx context.Context, apiKey, model string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model, err = selectModel(ctx, client)
		if err != nil {
			return nil, err
		}
	}

	return &Service{client: client, model: model}, nil
}

// selectModel lists available models and picks a preferred one, falling back
// to the first model that supports generateContent.
func selectModel(ctx context.Context, client *genai.Client) (string, error) {
	var available []string
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return "", fmt.Errorf("failed to list Gemini models: %w", err)
		}
		for _, action := range m.SupportedActions {
			if action == "generateContent" {
				available = append(available, m.Name)
				break
			}
		}
	}
	if len(available) == 0 {
		return "", fmt.Errorf("no Gemini model supporting generateContent available")
	}

	for _, preferred := range preferredModels {
		for _, name := range available {
			if strings.TrimPrefix(name, "models/") == preferred {
				return preferred, nil
			}
		}
	}
	return strings.TrimPrefix(available[0], "models/"), nil
}

func (s *Service) Model() string {
	return s.model
}

// GenerateContent submits a single free-form prompt and returns the text
// response. No conversation state is held between calls.
func (s *Service) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}
