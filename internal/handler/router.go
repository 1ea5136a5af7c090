package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theindianczar/stockmcp/internal/middleware"
)

// NewRouter sets up the gin engine with the dashboard routes.
func NewRouter(h *DashboardHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	router.GET("/", h.Index)
	router.POST("/run", h.RunForm)

	api := router.Group("/api")
	{
		api.POST("/backtest/run", h.RunAPI)
		api.GET("/state", h.State)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
