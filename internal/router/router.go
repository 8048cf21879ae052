package router

import (
	"github.com/gin-gonic/gin"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/config"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/handler"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/middleware"
)

// New assembles the gin engine with middleware and the API route table.
func New(cfg *config.Config, analysisHandler *handler.AnalysisHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", healthHandler.Check)

	v1 := r.Group("/api/v1")
	{
		analyses := v1.Group("/analyses")
		{
			analyses.POST("", analysisHandler.Create)
			analyses.GET("", analysisHandler.List)
			analyses.GET("/:id", analysisHandler.Get)
			analyses.GET("/:id/document", analysisHandler.Document)
			analyses.GET("/:id/report", analysisHandler.Report)
			analyses.DELETE("/:id", analysisHandler.Delete)
		}
	}

	return r
}
