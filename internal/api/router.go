// Package api wires the HTTP surface of the pricer.
package api

import (
	"net/http"

	"option-pricer/internal/api/handlers"
	"option-pricer/internal/api/middleware"
	"option-pricer/internal/api/models"
	"option-pricer/internal/cache"
	"option-pricer/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Options configures NewRouter.
type Options struct {
	Limits         handlers.Limits
	AllowedOrigins []string
	// QuoteCache holds deterministic /price responses; nil disables it.
	QuoteCache *cache.TTLCache[models.PriceResponse]
}

// NewRouter builds the gin engine with every route and middleware installed.
func NewRouter(opts Options) *gin.Engine {
	if opts.Limits.DefaultPaths == 0 {
		opts.Limits = handlers.DefaultLimits
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.AllowedOrigins...))
	router.Use(middleware.Logger())

	pricingHandler := handlers.NewPricingHandler(opts.Limits, opts.QuoteCache)
	simulateHandler := handlers.NewSimulateHandler(opts.Limits)
	convergenceHandler := handlers.NewConvergenceHandler(opts.Limits)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/price", pricingHandler.Price)
		v1.POST("/simulate", simulateHandler.Simulate)
		v1.POST("/convergence", convergenceHandler.Run)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
