package pos

import (
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/reports"
	"pos_backend/pkg/store"

	"github.com/gin-gonic/gin"
)

// GetCustomers lists customer profiles with loyalty stats
func GetCustomers(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, app.State.Customers(store.CustomerFilter{
		Segment: c.DefaultQuery("segment", "ALL"),
		Search:  c.Query("search"),
	}))
}

// CreateCustomer adds a customer profile
func CreateCustomer(c *gin.Context) {
	var req store.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer"})
		return
	}

	app := middleware.GetApp(c)
	customer, err := app.State.AddCustomer(req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, store.CustomerView{Customer: customer, VIP: customer.IsVIP()})
}

// UpdateCustomer edits a customer profile, loyalty points included
func UpdateCustomer(c *gin.Context) {
	var req store.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer"})
		return
	}

	app := middleware.GetApp(c)
	customer, err := app.State.UpdateCustomer(c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store.CustomerView{Customer: customer, VIP: customer.IsVIP()})
}

// DeleteCustomer removes a customer profile
func DeleteCustomer(c *gin.Context) {
	app := middleware.GetApp(c)
	if err := app.State.DeleteCustomer(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetMyDashboard returns the caller's own order figures
func GetMyDashboard(c *gin.Context) {
	app := middleware.GetApp(c)
	member := middleware.CurrentStaff(c)
	c.JSON(http.StatusOK, gin.H{
		"staff":   member,
		"metrics": reports.Personal(app.State.Orders(), member.ID),
	})
}
