package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterConfig carries what NewRouter needs beyond the handlers.
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxFileSize    int64
}

// NewRouter mounts every endpoint under /api/v1 behind request logging and
// rate limiting. /health is never rate limited.
func NewRouter(cfg RouterConfig, log zerolog.Logger, statements *StatementHandler, documents *DocumentHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))
	if cfg.MaxFileSize > 0 {
		router.MaxMultipartMemory = cfg.MaxFileSize
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "finextract",
		})
	})

	api := router.Group("/api/v1")
	api.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		api.POST("/statements/parse", statements.Parse)
		api.POST("/mortgage/parse", documents.ParseMortgage)

		tax := api.Group("/tax")
		{
			tax.POST("/scan", documents.ScanTax)
			tax.GET("/form-types", documents.FormTypes)
			tax.POST("/summary", documents.TaxSummary)
		}

		api.POST("/receipts/scan", documents.ScanReceipt)

		jobs := api.Group("/jobs")
		{
			jobs.POST("", documents.SubmitJob)
			jobs.GET("/:id", documents.GetJob)
		}

		api.POST("/documents/merge", documents.Merge)
	}
	return router
}
