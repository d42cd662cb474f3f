package routes

import (
	"net/http"
	"pos_backend/pkg/config"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/services"

	"github.com/gin-gonic/gin"
)

// Setup mounts the API on router. Sessions and CORS are installed by the caller.
func Setup(router *gin.Engine, app *middleware.App) {
	router.Use(middleware.WithApp(app), middleware.ErrorMiddleware())

	// Root route
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "POS Backend Server is running...")
	})

	api := router.Group("/api")
	{
		RegisterAuthRoutes(api)
		RegisterPOSRoutes(api)
		RegisterAdminRoutes(api)

		// Health check route
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":       "ok",
				"environment":  config.AppConfig.Environment,
				"database":     "connected",
				"services":     services.GetServiceStatus(),
				"syncFailures": len(app.State.SyncFailures()),
			})
		})
	}

	router.NoRoute(middleware.NotFoundHandler())
}
