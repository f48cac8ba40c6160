package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/pkg/pubmed"
)

// ErrUnavailable reports that no generative backend is configured or the
// configured backend rejected the call. Callers degrade to a placeholder
// summary instead of failing the request.
var ErrUnavailable = errors.New("generative backend unavailable")

const (
	// SectionMarker introduces each subsection of a generated report.
	SectionMarker = "### "

	abstractContextLimit = 500
	abstractAnalyzeLimit = 800
)

// Composer turns retrieved articles into a persona-conditioned synthesis
// report. A Composer with a nil generator is valid but permanently
// unavailable; check Available before relying on output.
type Composer struct {
	generator Generator
}

func NewComposer(generator Generator) *Composer {
	return &Composer{generator: generator}
}

// Available reports whether a generative backend is configured.
func (c *Composer) Available() bool {
	return c.generator != nil
}

// ModelName returns the active model identifier for display.
func (c *Composer) ModelName() string {
	if c.generator == nil {
		return "not configured"
	}
	return c.generator.Model()
}

// Compose builds the synthesis prompt and returns the backend response
// verbatim. The mandated report shape (leading conclusion, "### " sections)
// is instructed, not validated.
func (c *Composer) Compose(ctx context.Context, query string, articles []pubmed.Article, persona domain.Persona) (string, error) {
	if c.generator == nil {
		return "", ErrUnavailable
	}

	text, err := c.generator.GenerateContent(ctx, BuildSummaryPrompt(query, articles, persona))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

// AnalyzeArticle generates a persona-conditioned analysis of a single
// already-fetched article.
func (c *Composer) AnalyzeArticle(ctx context.Context, title, abstract string, persona domain.Persona) (string, error) {
	if c.generator == nil {
		return "", ErrUnavailable
	}

	text, err := c.generator.GenerateContent(ctx, BuildAnalyzePrompt(title, abstract, persona))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

// BuildSummaryPrompt assembles the synthesis instruction: persona tone,
// mandated output shape and the article context block.
func BuildSummaryPrompt(query string, articles []pubmed.Article, persona domain.Persona) string {
	lines := make([]string, 0, len(articles))
	for _, art := range articles {
		lines = append(lines, fmt.Sprintf("- %s: %s", art.Title, truncateRunes(art.Abstract, abstractContextLimit)))
	}
	context := strings.Join(lines, "\n")

	instruction := "using dense medical terminology aimed at clinicians"
	if persona == domain.PersonaPatient {
		instruction = "in very plain, accessible language aimed at patients"
	}

	return fmt.Sprintf(
		"You are a medical research assistant. Topic: '%s'. Target audience: %s (%s). "+
			"Using the article abstracts below, write a comprehensive synthesis report. "+
			"Format your answer as follows:\n"+
			"1. Start with a short paragraph titled 'OVERALL CONCLUSION'.\n"+
			"2. Write the remaining detail under subsections introduced by '%s' (three hash marks), "+
			"e.g. '### Treatment Options', '### Side Effects', with itemized bullet points under each.\n"+
			"Articles:\n%s",
		query, persona, instruction, strings.TrimSpace(SectionMarker), context)
}

// BuildAnalyzePrompt assembles the single-article analysis instruction.
func BuildAnalyzePrompt(title, abstract string, persona domain.Persona) string {
	return fmt.Sprintf(
		"Analyze the following article for a %s audience. Separate sections with '###':\n%s\n%s",
		persona, title, truncateRunes(abstract, abstractAnalyzeLimit))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
