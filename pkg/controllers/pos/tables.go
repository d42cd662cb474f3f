package pos

import (
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/store"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTables lists the floor plan
func GetTables(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, gin.H{"tables": app.State.Tables()})
}

// CycleTable moves a table to the next status of AVAILABLE, OCCUPIED, DIRTY
func CycleTable(c *gin.Context) {
	app := middleware.GetApp(c)
	table, err := app.State.CycleTable(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatus sets a table status directly
func UpdateTableStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	app := middleware.GetApp(c)
	status := models.TableStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	table, err := app.State.UpdateTableStatus(c.Param("id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// GetReservations lists bookings in time order
func GetReservations(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, gin.H{"reservations": app.State.Reservations()})
}

// CreateReservation books a table
func CreateReservation(c *gin.Context) {
	var req store.ReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation"})
		return
	}

	app := middleware.GetApp(c)
	reservation, err := app.State.AddReservation(req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// UpdateReservation edits a booking
func UpdateReservation(c *gin.Context) {
	var req store.ReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservation"})
		return
	}

	app := middleware.GetApp(c)
	reservation, err := app.State.UpdateReservation(c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservationStatus checks a booking in or cancels it
func UpdateReservationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	app := middleware.GetApp(c)
	status := models.ReservationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	reservation, err := app.State.SetReservationStatus(c.Param("id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a booking
func DeleteReservation(c *gin.Context) {
	app := middleware.GetApp(c)
	if err := app.State.DeleteReservation(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
