package main

import (
	"context"
	"log"

	api "meddigest-backend/cmd/api"
	searchdomain "meddigest-backend/internal/search/domain"
	searchRepo "meddigest-backend/internal/search/repository"
	searchUsecase "meddigest-backend/internal/search/usecase"
	"meddigest-backend/pkg/ai"
	"meddigest-backend/pkg/config"
	"meddigest-backend/pkg/database"
	"meddigest-backend/pkg/news"
	"meddigest-backend/pkg/pubmed"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&searchdomain.SearchLog{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	logRepo := searchRepo.NewSearchLogRepository(db)

	// Initialize the generative backend. The composer stays usable in a
	// disabled state when no provider is configured; the pipeline then
	// degrades to placeholder summaries instead of failing requests.
	var generator ai.Generator
	g, err := ai.NewGenerator(context.Background(), ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Printf("[WARN] AI provider unavailable, summaries disabled: %v", err)
	} else {
		generator = g
		log.Printf("AI provider initialized with model: %s", g.Model())
	}
	composer := ai.NewComposer(generator)

	// Initialize external clients
	pubmedClient := pubmed.NewClient()
	newsClient := news.NewClient(cfg.NewsFeedURL)

	// Initialize use case (dependency injection)
	searchUsecaseInstance := searchUsecase.NewSearchUsecase(pubmedClient, composer, logRepo)

	// Initialize HTTP handler
	handler := api.NewHandler(searchUsecaseInstance, newsClient, "templates/*")

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
