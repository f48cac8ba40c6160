package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/internal/search/repository"
	"meddigest-backend/pkg/ai"
	"meddigest-backend/pkg/pubmed"
)

type fakeSearcher struct {
	articles []pubmed.Article
	err      error
	calls    int
}

func (f *fakeSearcher) Search(_ context.Context, _, _, _ string) ([]pubmed.Article, error) {
	f.calls++
	return f.articles, f.err
}

type fakeComposer struct {
	summary    string
	err        error
	calls      int
	gotPersona domain.Persona
}

func (f *fakeComposer) Available() bool   { return f.err == nil }
func (f *fakeComposer) ModelName() string { return "fake-model" }

func (f *fakeComposer) Compose(_ context.Context, _ string, _ []pubmed.Article, persona domain.Persona) (string, error) {
	f.calls++
	f.gotPersona = persona
	return f.summary, f.err
}

func (f *fakeComposer) AnalyzeArticle(_ context.Context, _, _ string, persona domain.Persona) (string, error) {
	f.calls++
	f.gotPersona = persona
	return f.summary, f.err
}

type fakeArchive struct {
	entries   []domain.SearchLog
	appendErr error
}

func (f *fakeArchive) Append(entry *domain.SearchLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeArchive) Recent(limit int) []domain.SearchLog {
	if len(f.entries) > limit {
		return f.entries[:limit]
	}
	return f.entries
}

func (f *fakeArchive) Get(id uint) (*domain.SearchLog, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func threeArticles() []pubmed.Article {
	return []pubmed.Article{
		{Title: "Study A", Abstract: "a", Year: "2023"},
		{Title: "Study B", Abstract: "b", Year: "2023"},
		{Title: "Study C", Abstract: "c", Year: "2022"},
	}
}

func TestRunEmptyQuerySkipsSearch(t *testing.T) {
	searcher := &fakeSearcher{}
	uc := NewSearchUsecase(searcher, &fakeComposer{}, &fakeArchive{})

	result := uc.Run(context.Background(), Request{Query: "   "})
	assert.Zero(t, result)
	assert.Zero(t, searcher.calls)
}

func TestRunNoResultsShortCircuits(t *testing.T) {
	composer := &fakeComposer{}
	archive := &fakeArchive{}
	uc := NewSearchUsecase(&fakeSearcher{err: pubmed.ErrNoResults}, composer, archive)

	result := uc.Run(context.Background(), Request{Query: "rare syndrome", Persona: domain.PersonaClinician})
	assert.Equal(t, noResultsMessage, result.ErrorMsg)
	assert.Empty(t, result.Summary)
	assert.Zero(t, composer.calls, "composer must not run without articles")
	assert.Empty(t, archive.entries, "nothing to archive without articles")
}

func TestRunSourceFailureShortCircuits(t *testing.T) {
	composer := &fakeComposer{}
	uc := NewSearchUsecase(&fakeSearcher{err: errors.New("connection refused")}, composer, &fakeArchive{})

	result := uc.Run(context.Background(), Request{Query: "diabetes"})
	assert.Contains(t, result.ErrorMsg, "Data source error")
	assert.Contains(t, result.ErrorMsg, "connection refused")
	assert.Zero(t, composer.calls)
}

func TestRunArchivesSuccessfulSummary(t *testing.T) {
	archive := &fakeArchive{}
	composer := &fakeComposer{summary: "OVERALL CONCLUSION\nGood news.\n### Details\n- item"}
	uc := NewSearchUsecase(&fakeSearcher{articles: threeArticles()}, composer, archive)

	result := uc.Run(context.Background(), Request{Query: "diabetes treatment 2023", Persona: domain.PersonaPatient})
	require.Len(t, archive.entries, 1)

	entry := archive.entries[0]
	assert.Equal(t, "diabetes treatment 2023", entry.Query)
	assert.Equal(t, composer.summary, entry.Summary)
	assert.Equal(t, "Patient", entry.Persona)
	assert.Equal(t, "Study A || Study B || Study C", entry.Sources)
	assert.Equal(t, composer.summary, result.Summary)
	assert.Equal(t, domain.PersonaPatient, composer.gotPersona)
	assert.Len(t, result.Articles, 3)
}

func TestRunUnavailableComposerStillArchives(t *testing.T) {
	archive := &fakeArchive{}
	composer := &fakeComposer{err: ai.ErrUnavailable}
	uc := NewSearchUsecase(&fakeSearcher{articles: threeArticles()}, composer, archive)

	result := uc.Run(context.Background(), Request{Query: "diabetes", Persona: domain.PersonaClinician})
	assert.Contains(t, result.Summary, "AI model unavailable")
	assert.Contains(t, result.Summary, "fake-model")

	// The failed generation attempt is still archived so operators can see it.
	require.Len(t, archive.entries, 1)
	assert.Equal(t, result.Summary, archive.entries[0].Summary)
}

func TestRunComposerCallFailureStillArchives(t *testing.T) {
	archive := &fakeArchive{}
	composer := &fakeComposer{err: errors.New("quota exhausted")}
	uc := NewSearchUsecase(&fakeSearcher{articles: threeArticles()}, composer, archive)

	result := uc.Run(context.Background(), Request{Query: "diabetes"})
	assert.Contains(t, result.Summary, "AI response generation failed")
	require.Len(t, archive.entries, 1)
}

func TestRunArchiveFailureStillReturnsSummary(t *testing.T) {
	composer := &fakeComposer{summary: "the report"}
	uc := NewSearchUsecase(&fakeSearcher{articles: threeArticles()}, composer, &fakeArchive{appendErr: errors.New("disk full")})

	result := uc.Run(context.Background(), Request{Query: "diabetes"})
	assert.Equal(t, "the report", result.Summary)
	assert.Empty(t, result.ErrorMsg)
}

func TestAnalyzeUnavailable(t *testing.T) {
	uc := NewSearchUsecase(&fakeSearcher{}, &fakeComposer{err: ai.ErrUnavailable}, &fakeArchive{})

	analysis := uc.Analyze(context.Background(), "Title", "Abstract", domain.PersonaPatient)
	assert.Equal(t, "AI model is not active.", analysis)
}

func TestExportNotFound(t *testing.T) {
	uc := NewSearchUsecase(&fakeSearcher{}, &fakeComposer{}, &fakeArchive{})

	content, filename, err := uc.Export(42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, content)
	assert.Empty(t, filename)
}

func TestExportRendersStoredEntry(t *testing.T) {
	archive := &fakeArchive{}
	composer := &fakeComposer{summary: "report body"}
	uc := NewSearchUsecase(&fakeSearcher{articles: threeArticles()}, composer, archive)

	uc.Run(context.Background(), Request{Query: "diabetes", Persona: domain.PersonaClinician})
	require.Len(t, archive.entries, 1)

	content, filename, err := uc.Export(archive.entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "report_1.pdf", filename)
	assert.Equal(t, "%PDF", string(content[:4]))
}
