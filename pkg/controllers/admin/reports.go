package admin

import (
	"bytes"
	"log"
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/reports"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func reportWindow(c *gin.Context) (reports.Window, bool) {
	app := middleware.GetApp(c)
	w, err := reports.ParseWindow(c.Query("from"), c.Query("to"), app.State.Now(), app.State.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return reports.Window{}, false
	}
	return w, true
}

func staffFilter(c *gin.Context) reports.StaffFilter {
	return reports.StaffFilter{Role: c.DefaultQuery("role", "ALL"), Search: c.Query("search")}
}

// GetReports returns every report section for the selected date range
func GetReports(c *gin.Context) {
	w, ok := reportWindow(c)
	if !ok {
		return
	}

	app := middleware.GetApp(c)
	orders := app.State.Orders()
	c.JSON(http.StatusOK, gin.H{
		"from":       w.StartDate(),
		"to":         w.EndDate(),
		"summary":    reports.Summarize(orders, w),
		"revenue":    reports.PeriodRevenue(orders, w),
		"trend":      reports.DailyTrend(orders, w),
		"categories": reports.CategoryPerformance(orders, w),
		"hourly":     reports.HourlyTraffic(orders, w),
		"sources":    reports.OrderSources(orders, w),
		"staff":      reports.StaffPerformance(orders, app.State.StaffMembers(), w, staffFilter(c)),
	})
}

func reportSection(key string, compute func(orders []models.Order, w reports.Window) any) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := reportWindow(c)
		if !ok {
			return
		}
		app := middleware.GetApp(c)
		c.JSON(http.StatusOK, gin.H{"from": w.StartDate(), "to": w.EndDate(), key: compute(app.State.Orders(), w)})
	}
}

// Single report sections for the date range in ?from=&to=
var (
	GetReportSummary = reportSection("summary", func(o []models.Order, w reports.Window) any {
		return reports.Summarize(o, w)
	})
	GetRevenueTrend = reportSection("trend", func(o []models.Order, w reports.Window) any {
		return reports.DailyTrend(o, w)
	})
	GetCategoryPerformance = reportSection("categories", func(o []models.Order, w reports.Window) any {
		return reports.CategoryPerformance(o, w)
	})
	GetHourlyTraffic = reportSection("hourly", func(o []models.Order, w reports.Window) any {
		return reports.HourlyTraffic(o, w)
	})
	GetOrderSources = reportSection("sources", func(o []models.Order, w reports.Window) any {
		return reports.OrderSources(o, w)
	})
)

// GetStaffPerformance returns the staff table on its own
func GetStaffPerformance(c *gin.Context) {
	w, ok := reportWindow(c)
	if !ok {
		return
	}

	app := middleware.GetApp(c)
	rows := reports.StaffPerformance(app.State.Orders(), app.State.StaffMembers(), w, staffFilter(c))
	c.JSON(http.StatusOK, gin.H{"from": w.StartDate(), "to": w.EndDate(), "staff": rows})
}

// ExportRevenueCSV downloads the daily revenue trend
func ExportRevenueCSV(c *gin.Context) {
	w, ok := reportWindow(c)
	if !ok {
		return
	}

	app := middleware.GetApp(c)
	var buf bytes.Buffer
	if err := reports.WriteRevenueCSV(&buf, reports.DailyTrend(app.State.Orders(), w)); err != nil {
		log.Printf("Error exporting revenue report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export report"})
		return
	}
	utils.AttachmentResponse(c, reports.RevenueFileName(w), "text/csv", buf.Bytes())
}

// ExportStaffCSV downloads the staff performance table
func ExportStaffCSV(c *gin.Context) {
	w, ok := reportWindow(c)
	if !ok {
		return
	}

	app := middleware.GetApp(c)
	rows := reports.StaffPerformance(app.State.Orders(), app.State.StaffMembers(), w, staffFilter(c))
	var buf bytes.Buffer
	if err := reports.WriteStaffCSV(&buf, rows); err != nil {
		log.Printf("Error exporting staff report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export report"})
		return
	}
	utils.AttachmentResponse(c, reports.StaffFileName(w), "text/csv", buf.Bytes())
}
