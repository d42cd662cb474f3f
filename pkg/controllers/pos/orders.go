package pos

import (
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/store"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMenu lists sellable items for the order screen
func GetMenu(c *gin.Context) {
	app := middleware.GetApp(c)
	items := app.State.POSMenu(c.DefaultQuery("category", "ALL"), c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"items": items, "settings": app.State.Settings()})
}

// Checkout places an order for the current staff member
func Checkout(c *gin.Context) {
	var req store.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkout request"})
		return
	}

	app := middleware.GetApp(c)
	order, err := app.State.PlaceOrder(req, middleware.CurrentStaff(c))
	if err != nil {
		c.Error(err)
		return
	}

	totals := models.ComputeCheckout(order.Items, app.State.Settings().TaxRate)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
		"totals":  totals,
	})
}

// GetOrders returns the order history visible to the caller
func GetOrders(c *gin.Context) {
	app := middleware.GetApp(c)

	filter := store.OrderFilter{Search: c.Query("search")}
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" && status != "ALL" {
		filter.Status = models.OrderStatus(status)
		if !filter.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: " + status})
			return
		}
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, app.State.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "date must be YYYY-MM-DD"})
			return
		}
		filter.Day = day
	}

	c.JSON(http.StatusOK, app.State.ListOrders(filter, middleware.CurrentStaff(c)))
}

// GetOrder returns one order
func GetOrder(c *gin.Context) {
	app := middleware.GetApp(c)
	order, err := app.State.GetOrder(c.Param("id"), middleware.CurrentStaff(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdvanceOrder moves an order one step along the kitchen workflow
func AdvanceOrder(c *gin.Context) {
	app := middleware.GetApp(c)
	order, err := app.State.AdvanceOrder(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order moved to " + string(order.Status), "order": order})
}

// GetKitchenQueue returns the orders the kitchen still has to prepare
func GetKitchenQueue(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, gin.H{"orders": app.State.KitchenQueue()})
}
