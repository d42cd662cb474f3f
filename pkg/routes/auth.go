package routes

import (
	"pos_backend/pkg/controllers/auth"
	"pos_backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login, logout and session routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", auth.Login)

		// Protected routes
		authGroup.POST("/logout", middleware.AuthenticateStaff(), auth.Logout)
		authGroup.GET("/me", middleware.AuthenticateStaff(), auth.Me)
		authGroup.POST("/activity", middleware.AuthenticateStaff(), auth.Activity)
	}
}
