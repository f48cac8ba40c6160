package delivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/internal/search/repository"
	"meddigest-backend/internal/search/usecase"
	"meddigest-backend/pkg/news"
)

const historyLimit = 5

// NewsProvider supplies the headline digest shown next to every render.
type NewsProvider interface {
	Latest(ctx context.Context) []news.Item
}

// SearchHandler serves the single-page search UI and its side endpoints.
type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
	news          NewsProvider
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchUsecase usecase.SearchUsecase, newsProvider NewsProvider) *SearchHandler {
	return &SearchHandler{
		searchUsecase: searchUsecase,
		news:          newsProvider,
	}
}

// Index handles GET (empty form) and POST (run the pipeline) for "/".
// The response always merges the pipeline result with recent history and the
// news digest.
func (h *SearchHandler) Index(c *gin.Context) {
	var result usecase.Result
	req := usecase.Request{Persona: domain.PersonaClinician}

	if c.Request.Method == http.MethodPost {
		req = usecase.Request{
			Query:     c.PostForm("query"),
			StartYear: c.PostForm("start_year"),
			EndYear:   c.PostForm("end_year"),
			Persona:   domain.ParsePersona(c.PostForm("persona")),
		}
		result = h.searchUsecase.Run(c.Request.Context(), req)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"result":       result.Summary,
		"error":        result.ErrorMsg,
		"articles":     result.Articles,
		"query":        req.Query,
		"start_year":   req.StartYear,
		"end_year":     req.EndYear,
		"persona":      string(req.Persona),
		"history":      h.searchUsecase.History(historyLimit),
		"news_list":    h.news.Latest(c.Request.Context()),
		"active_model": h.searchUsecase.ActiveModel(),
	})
}

// AnalyzeArticleRequest represents the request body
type AnalyzeArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Abstract string `json:"abstract" binding:"required"`
	Persona  string `json:"persona"`
}

// AnalyzeArticle handles POST /analyze_article: a persona-conditioned
// analysis of a single already-fetched article, independent of the pipeline.
func (h *SearchHandler) AnalyzeArticle(c *gin.Context) {
	var req AnalyzeArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := h.searchUsecase.Analyze(c.Request.Context(), req.Title, req.Abstract, domain.ParsePersona(req.Persona))
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// Download handles GET /download/:id, streaming an archived entry as a PDF
// attachment. Unknown ids are refused with 404 before any rendering work.
func (h *SearchHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "entry not found")
		return
	}

	content, filename, err := h.searchUsecase.Export(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.String(http.StatusNotFound, "entry not found")
			return
		}
		c.String(http.StatusInternalServerError, "failed to render report")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", content)
}
