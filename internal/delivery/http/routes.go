package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiter Limiter, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(limiter))
	{
		catalog := v1.Group("/catalog")
		{
			catalog.POST("/import", handler.ImportCatalog)
			catalog.GET("/summary", handler.CatalogSummary)
			catalog.GET("/products/:linkId", handler.GetProduct)
		}

		v1.GET("/jobs/:jobId/assembly", handler.ExportAssembly)

		pricing := v1.Group("/pricing")
		pricing.Use(AuthMiddleware([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer), AdminRequired())
		{
			pricing.POST("/updates", handler.ApplyPriceUpdates)
			pricing.GET("/:sku/history", handler.PriceHistory)
		}
	}

	return router
}
