package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/internal/search/repository"
	"meddigest-backend/pkg/ai"
	"meddigest-backend/pkg/pdf"
	"meddigest-backend/pkg/pubmed"
)

const noResultsMessage = "No articles matched the given criteria."

type searchUsecase struct {
	searcher LiteratureSearcher
	composer SummaryComposer
	archive  repository.SearchLogRepository
}

// NewSearchUsecase creates the query pipeline with its collaborators injected.
func NewSearchUsecase(searcher LiteratureSearcher, composer SummaryComposer, archive repository.SearchLogRepository) SearchUsecase {
	return &searchUsecase{
		searcher: searcher,
		composer: composer,
		archive:  archive,
	}
}

// Run walks one submission through search, composition and archiving. A
// structural search failure or empty match short-circuits with an inline
// message; composition always proceeds to an archive attempt, even when it
// degraded to a placeholder; archive failures never block the response.
func (u *searchUsecase) Run(ctx context.Context, req Request) Result {
	if strings.TrimSpace(req.Query) == "" {
		return Result{}
	}

	articles, err := u.searcher.Search(ctx, req.Query, req.StartYear, req.EndYear)
	if err != nil {
		if errors.Is(err, pubmed.ErrNoResults) {
			return Result{ErrorMsg: noResultsMessage}
		}
		return Result{ErrorMsg: fmt.Sprintf("Data source error: %v", err)}
	}

	summary := u.composeSummary(ctx, req.Query, articles, req.Persona)

	titles := make([]string, len(articles))
	for i, art := range articles {
		titles[i] = art.Title
	}
	entry := &domain.SearchLog{
		Query:   req.Query,
		Summary: summary,
		Persona: string(req.Persona),
		Sources: strings.Join(titles, domain.SourceSeparator),
	}
	if err := u.archive.Append(entry); err != nil {
		log.Printf("[ERROR] archive write failed for query %q: %v", req.Query, err)
	}

	return Result{Summary: summary, Articles: articles}
}

// composeSummary converts the composer's typed failures into the in-band
// placeholder strings that are stored and displayed.
func (u *searchUsecase) composeSummary(ctx context.Context, query string, articles []pubmed.Article, persona domain.Persona) string {
	summary, err := u.composer.Compose(ctx, query, articles, persona)
	if err == nil {
		return summary
	}
	if errors.Is(err, ai.ErrUnavailable) {
		return fmt.Sprintf("ERROR: AI model unavailable (%s).", u.composer.ModelName())
	}
	return fmt.Sprintf("AI response generation failed: %v", err)
}

func (u *searchUsecase) History(limit int) []domain.SearchLog {
	return u.archive.Recent(limit)
}

func (u *searchUsecase) Analyze(ctx context.Context, title, abstract string, persona domain.Persona) string {
	if !u.composer.Available() {
		return "AI model is not active."
	}
	analysis, err := u.composer.AnalyzeArticle(ctx, title, abstract, persona)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return analysis
}

func (u *searchUsecase) Export(id uint) ([]byte, string, error) {
	entry, err := u.archive.Get(id)
	if err != nil {
		return nil, "", err
	}
	content, err := pdf.Render(entry)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("report_%d.pdf", entry.ID), nil
}

func (u *searchUsecase) ActiveModel() string {
	return u.composer.ModelName()
}
