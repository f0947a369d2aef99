package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvpress/internal/api/middleware"
	"cvpress/internal/metrics"
)

// NewRouter builds the Gin engine with the base middleware chain and the
// unauthenticated operational endpoints.
func NewRouter(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	return router
}
