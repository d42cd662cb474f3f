package routes

import (
	"pos_backend/pkg/controllers/pos"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"

	"github.com/gin-gonic/gin"
)

// RegisterPOSRoutes registers the routes used on the floor, gated per screen
func RegisterPOSRoutes(router *gin.RouterGroup) {
	posGroup := router.Group("/pos")
	posGroup.Use(middleware.AuthenticateStaff())

	counter := middleware.RequireRoles(models.RoleManager, models.RoleWaiter, models.RoleBartender, models.RoleAdmin)
	kitchen := middleware.RequireRoles(models.RoleManager, models.RoleAdmin, models.RoleChef)
	{
		posGroup.GET("/menu", pos.GetMenu)

		// Orders
		posGroup.POST("/orders", counter, pos.Checkout)
		posGroup.GET("/orders", pos.GetOrders)
		posGroup.GET("/orders/:id", pos.GetOrder)
		posGroup.GET("/orders/:id/receipt", pos.GetReceipt)
		posGroup.POST("/orders/:id/advance", kitchen, pos.AdvanceOrder)
		posGroup.GET("/kitchen", kitchen, pos.GetKitchenQueue)

		// Tables
		posGroup.GET("/tables", pos.GetTables)
		posGroup.POST("/tables/:id/cycle", pos.CycleTable)
		posGroup.PUT("/tables/:id/status", pos.UpdateTableStatus)

		// Reservations
		posGroup.GET("/reservations", pos.GetReservations)
		posGroup.POST("/reservations", pos.CreateReservation)
		posGroup.PUT("/reservations/:id", pos.UpdateReservation)
		posGroup.PATCH("/reservations/:id/status", pos.UpdateReservationStatus)
		posGroup.DELETE("/reservations/:id", pos.DeleteReservation)

		// Customers
		customers := posGroup.Group("/customers", middleware.RequireManagement())
		customers.GET("", pos.GetCustomers)
		customers.POST("", pos.CreateCustomer)
		customers.PUT("/:id", pos.UpdateCustomer)
		customers.DELETE("/:id", pos.DeleteCustomer)

		posGroup.GET("/dashboard", pos.GetMyDashboard)
	}
}
