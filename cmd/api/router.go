package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meddigest-backend/internal/search/delivery"
	"meddigest-backend/internal/search/usecase"
)

func SetupRoutes(r *gin.Engine, searchUsecase usecase.SearchUsecase, newsProvider delivery.NewsProvider) {
	searchHandler := delivery.NewSearchHandler(searchUsecase, newsProvider)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", searchHandler.Index)
	r.POST("/", searchHandler.Index)
	r.POST("/analyze_article", searchHandler.AnalyzeArticle)
	r.GET("/download/:id", searchHandler.Download)
}
