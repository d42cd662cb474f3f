package admin

import (
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/store"
	"strings"

	"github.com/gin-gonic/gin"
)

func normalizeCategory(c models.ItemCategory) models.ItemCategory {
	s := strings.ToUpper(strings.TrimSpace(string(c)))
	return models.ItemCategory(strings.ReplaceAll(s, " ", "_"))
}

// SetOrderStatus overrides an order's status from any state
func SetOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	app := middleware.GetApp(c)
	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	order, err := app.State.SetOrderStatus(c.Param("id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// DeleteOrder removes an order for good
func DeleteOrder(c *gin.Context) {
	app := middleware.GetApp(c)
	if err := app.State.DeleteOrder(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// CreateTable adds a table to the floor plan
func CreateTable(c *gin.Context) {
	var req struct {
		Label string `json:"label" binding:"required"`
		Seats int    `json:"seats" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "label and seats are required"})
		return
	}

	app := middleware.GetApp(c)
	table, err := app.State.AddTable(req.Label, req.Seats)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, table)
}

// DeleteTable removes a table from the floor plan
func DeleteTable(c *gin.Context) {
	app := middleware.GetApp(c)
	if err := app.State.DeleteTable(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}

// GetStaff lists all staff members
func GetStaff(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, gin.H{"staff": app.State.StaffMembers()})
}

// CreateStaff registers a staff member with a hashed passcode
func CreateStaff(c *gin.Context) {
	var req store.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid staff member"})
		return
	}

	app := middleware.GetApp(c)
	member, err := app.State.AddStaff(req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateStaff edits a staff member. An empty passcode keeps the current one.
func UpdateStaff(c *gin.Context) {
	var req store.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid staff member"})
		return
	}

	app := middleware.GetApp(c)
	member, err := app.State.UpdateStaff(c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteStaff removes a staff member. Signing yourself out this way is refused.
func DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.CurrentStaff(c).ID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot delete your own account"})
		return
	}

	app := middleware.GetApp(c)
	if err := app.State.DeleteStaff(id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
