package api

import (
	"github.com/gin-gonic/gin"

	"meddigest-backend/internal/search/delivery"
	"meddigest-backend/internal/search/usecase"
)

type Handler struct {
	searchUsecase usecase.SearchUsecase
	newsProvider  delivery.NewsProvider
	templateGlob  string
}

func NewHandler(searchUsecase usecase.SearchUsecase, newsProvider delivery.NewsProvider, templateGlob string) *Handler {
	return &Handler{
		searchUsecase: searchUsecase,
		newsProvider:  newsProvider,
		templateGlob:  templateGlob,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.LoadHTMLGlob(h.templateGlob)

	// Setup routes
	SetupRoutes(r, h.searchUsecase, h.newsProvider)

	return r.Run(addr)
}
