package admin

import (
	"errors"
	"log"
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/reports"
	"pos_backend/pkg/store"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns today's figures and the weekly revenue chart
func GetDashboard(c *gin.Context) {
	app := middleware.GetApp(c)
	dashboard := reports.ManagerDashboard(app.State.Orders(), app.State.Tables(), app.State.Now(), app.State.Location())
	c.JSON(http.StatusOK, dashboard)
}

// GetInsights asks the assistant for recommendations based on today's figures
func GetInsights(c *gin.Context) {
	app := middleware.GetApp(c)
	now, loc := app.State.Now(), app.State.Location()
	orders := app.State.Orders()

	dashboard := reports.ManagerDashboard(orders, app.State.Tables(), now, loc)
	metrics := reports.Insights(dashboard, orders, app.State.StaffMembers(), now, loc)
	c.JSON(http.StatusOK, gin.H{
		"metrics":  metrics,
		"insights": app.Assistant.BusinessInsights(c.Request.Context(), metrics),
	})
}

// GetSettings returns the business settings
func GetSettings(c *gin.Context) {
	app := middleware.GetApp(c)
	c.JSON(http.StatusOK, app.State.Settings())
}

// UpdateSettings saves new settings and applies the standby timeout to live sessions
func UpdateSettings(c *gin.Context) {
	var req models.SystemSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid settings"})
		return
	}

	app := middleware.GetApp(c)
	settings, err := app.State.UpdateSettings(req)
	if errors.Is(err, store.ErrInvalidInput) {
		c.Error(err)
		return
	}
	app.Idle.SetTimeout(time.Duration(settings.StandbyMinutes) * time.Minute)
	if err != nil {
		// applied in memory, only the settings file failed
		log.Printf("⚠️  Settings applied but not saved: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": "Settings applied but could not be saved", "settings": settings})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully", "settings": settings})
}

// ResetSystem clears orders, reservations and customers
func ResetSystem(c *gin.Context) {
	app := middleware.GetApp(c)
	app.State.ResetSystem()
	log.Printf("🧹 System reset by %s", middleware.CurrentStaff(c).ID)
	c.JSON(http.StatusOK, gin.H{"message": "System reset successfully"})
}

// GetSyncFailures lists remote writes that gave up after retrying
func GetSyncFailures(c *gin.Context) {
	app := middleware.GetApp(c)
	failures := app.State.SyncFailures()
	c.JSON(http.StatusOK, gin.H{"failures": failures, "count": len(failures)})
}
