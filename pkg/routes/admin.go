package routes

import (
	"pos_backend/pkg/controllers/admin"
	"pos_backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers back-office routes. Settings can be read by
// anyone signed in; everything else needs a manager or an admin.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AuthenticateStaff())
	{
		adminGroup.GET("/settings", admin.GetSettings)

		management := adminGroup.Group("")
		management.Use(middleware.RequireManagement())
		{
			// Menu management
			management.GET("/menu", admin.GetMenuItems)
			management.POST("/menu", admin.CreateMenuItem)
			management.PUT("/menu/:id", admin.UpdateMenuItem)
			management.DELETE("/menu/:id", admin.DeleteMenuItem)
			management.POST("/menu/:id/image", admin.UploadMenuImage)
			management.POST("/menu/description", admin.GenerateDescription)

			// Tables
			management.POST("/tables", admin.CreateTable)
			management.DELETE("/tables/:id", admin.DeleteTable)

			// Staff management
			management.GET("/staff", admin.GetStaff)
			management.POST("/staff", admin.CreateStaff)
			management.PUT("/staff/:id", admin.UpdateStaff)
			management.DELETE("/staff/:id", admin.DeleteStaff)

			// Reports
			management.GET("/reports", admin.GetReports)
			management.GET("/reports/summary", admin.GetReportSummary)
			management.GET("/reports/trend", admin.GetRevenueTrend)
			management.GET("/reports/categories", admin.GetCategoryPerformance)
			management.GET("/reports/hourly", admin.GetHourlyTraffic)
			management.GET("/reports/sources", admin.GetOrderSources)
			management.GET("/reports/staff", admin.GetStaffPerformance)
			management.GET("/reports/export/revenue", admin.ExportRevenueCSV)
			management.GET("/reports/export/staff", admin.ExportStaffCSV)

			// Dashboard
			management.GET("/dashboard", admin.GetDashboard)
			management.GET("/insights", admin.GetInsights)

			management.PUT("/settings", admin.UpdateSettings)
			management.GET("/sync/failures", admin.GetSyncFailures)
		}

		adminOnly := adminGroup.Group("")
		adminOnly.Use(middleware.RequireAdmin())
		{
			adminOnly.PUT("/orders/:id/status", admin.SetOrderStatus)
			adminOnly.DELETE("/orders/:id", admin.DeleteOrder)
			adminOnly.POST("/system/reset", admin.ResetSystem)
			adminOnly.POST("/system/reset-menu", admin.ResetMenu)
		}
	}
}
