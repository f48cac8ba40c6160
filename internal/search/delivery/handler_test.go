package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meddigest-backend/internal/search/domain"
	"meddigest-backend/internal/search/repository"
	"meddigest-backend/internal/search/usecase"
	"meddigest-backend/pkg/news"
)

type stubUsecase struct {
	analysis   string
	exportErr  error
	exported   []byte
	gotPersona domain.Persona
}

func (s *stubUsecase) Run(_ context.Context, _ usecase.Request) usecase.Result {
	return usecase.Result{}
}

func (s *stubUsecase) History(_ int) []domain.SearchLog { return nil }

func (s *stubUsecase) Analyze(_ context.Context, _, _ string, persona domain.Persona) string {
	s.gotPersona = persona
	return s.analysis
}

func (s *stubUsecase) Export(_ uint) ([]byte, string, error) {
	if s.exportErr != nil {
		return nil, "", s.exportErr
	}
	return s.exported, "report_1.pdf", nil
}

func (s *stubUsecase) ActiveModel() string { return "stub-model" }

type stubNews struct{}

func (stubNews) Latest(_ context.Context) []news.Item { return nil }

func newTestRouter(uc usecase.SearchUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSearchHandler(uc, stubNews{})
	r.POST("/analyze_article", h.AnalyzeArticle)
	r.GET("/download/:id", h.Download)
	return r
}

func TestAnalyzeArticle(t *testing.T) {
	uc := &stubUsecase{analysis: "### Key Points\n- finding"}
	r := newTestRouter(uc)

	body := `{"title":"Study A","abstract":"Details.","persona":"Patient"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze_article", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"analysis":"### Key Points\n- finding"}`, w.Body.String())
	assert.Equal(t, domain.PersonaPatient, uc.gotPersona)
}

func TestAnalyzeArticleRejectsMissingFields(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze_article", strings.NewReader(`{"persona":"Patient"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadUnknownID(t *testing.T) {
	r := newTestRouter(&stubUsecase{exportErr: repository.ErrNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadNonNumericID(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/abc", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadSetsAttachmentHeaders(t *testing.T) {
	r := newTestRouter(&stubUsecase{exported: []byte("%PDF-1.3 fake")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/download/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report_1.pdf", w.Header().Get("Content-Disposition"))
}
