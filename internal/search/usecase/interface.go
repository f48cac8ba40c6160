package usecase

import (
	"context"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/pkg/pubmed"
)

// Request carries one search submission through the pipeline.
type Request struct {
	Query     string
	StartYear string
	EndYear   string
	Persona   domain.Persona
}

// Result is the outcome of one pipeline run. ErrorMsg is a user-facing inline
// message (source failure or no-results empty state); it is never a panic and
// never fatal to the process.
type Result struct {
	Summary  string
	Articles []pubmed.Article
	ErrorMsg string
}

// LiteratureSearcher retrieves article records for a query.
type LiteratureSearcher interface {
	Search(ctx context.Context, query, startYear, endYear string) ([]pubmed.Article, error)
}

// SummaryComposer synthesizes persona-conditioned reports from articles.
type SummaryComposer interface {
	Available() bool
	ModelName() string
	Compose(ctx context.Context, query string, articles []pubmed.Article, persona domain.Persona) (string, error)
	AnalyzeArticle(ctx context.Context, title, abstract string, persona domain.Persona) (string, error)
}

// SearchUsecase defines the interface for the query pipeline use cases
type SearchUsecase interface {
	// Run executes search -> compose -> archive for one submission.
	Run(ctx context.Context, req Request) Result
	// History lists the most recent archived entries, newest first.
	History(limit int) []domain.SearchLog
	// Analyze produces a persona-conditioned analysis of a single article.
	// Failures degrade to an in-band message, matching the pipeline contract.
	Analyze(ctx context.Context, title, abstract string, persona domain.Persona) string
	// Export renders an archived entry as a PDF, returning the bytes and the
	// attachment filename. Unknown ids yield repository.ErrNotFound before
	// any rendering work begins.
	Export(id uint) ([]byte, string, error)
	// ActiveModel names the configured generative model for display.
	ActiveModel() string
}
