package routes

import (
	"net/http"

	"findthem_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, staticFilesDir string) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CaseHandler.RegisterRoutes(api)
	}

	// Uploaded photos are served straight from disk when local storage
	// is configured. S3-backed deployments get absolute URLs instead.
	if staticFilesDir != "" {
		ginRouter.Static("/files", staticFilesDir)
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
