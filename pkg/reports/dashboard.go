package reports

import (
	"pos_backend/pkg/models"
	"time"
)

// PersonalMetrics is the dashboard of a floor or kitchen user.
type PersonalMetrics struct {
	Orders  int     `json:"myOrders"`
	Revenue float64 `json:"myRevenue"`
	Pending int     `json:"myPending"`
}

// Personal covers every order the staff member placed, of any status and age.
func Personal(orders []models.Order, staffID string) PersonalMetrics {
	var m PersonalMetrics
	for _, o := range orders {
		if o.StaffID == nil || *o.StaffID != staffID {
			continue
		}
		m.Orders++
		m.Revenue += o.Total
		if o.Status == models.OrderStatusPending {
			m.Pending++
		}
	}
	return m
}

// WeekdayRevenue is one bar of the weekly revenue chart.
type WeekdayRevenue struct {
	Name    string  `json:"name"`
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Dashboard is the manager overview.
type Dashboard struct {
	RevenueToday float64          `json:"revenueToday"`
	OrdersToday  int              `json:"ordersToday"`
	ActiveTables int              `json:"activeTables"`
	Weekly       []WeekdayRevenue `json:"weeklyRevenue"`
}

// ManagerDashboard computes today's figures and the last seven days of revenue.
// Today's order count includes cancelled orders; revenue never does.
func ManagerDashboard(orders []models.Order, tables []models.Table, now time.Time, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.Local
	}
	todayStart := startOfDay(now, loc)

	var d Dashboard
	for _, o := range orders {
		if o.Timestamp.Before(todayStart) {
			continue
		}
		d.OrdersToday++
		if o.Status != models.OrderStatusCancelled {
			d.RevenueToday += o.Total
		}
	}
	for _, t := range tables {
		if t.Status == models.TableStatusOccupied {
			d.ActiveTables++
		}
	}

	week := NewWindow(todayStart.AddDate(0, 0, -6), todayStart, loc)
	for _, day := range DailyTrend(orders, week) {
		date, _ := time.ParseInLocation(dateLayout, day.Date, loc)
		d.Weekly = append(d.Weekly, WeekdayRevenue{
			Name:    date.Format("Mon"),
			Date:    day.Date,
			Revenue: day.Revenue,
		})
	}
	return d
}

// InsightMetrics is the summary handed to the text-completion service.
type InsightMetrics struct {
	RevenueToday float64 `json:"revenueToday"`
	OrdersToday  int     `json:"ordersToday"`
	ActiveTables int     `json:"activeTables"`
	PopularItem  string  `json:"popularItem"`
	StaffOnDuty  int     `json:"staffOnDuty"`
}

// Insights builds the metrics summary from the dashboard, the best-selling
// item of today and the number of active staff.
func Insights(d Dashboard, orders []models.Order, staff []models.Staff, now time.Time, loc *time.Location) InsightMetrics {
	m := InsightMetrics{
		RevenueToday: d.RevenueToday,
		OrdersToday:  d.OrdersToday,
		ActiveTables: d.ActiveTables,
		PopularItem:  PopularItem(orders, NewWindow(now, now, loc)),
	}
	for _, s := range staff {
		if s.IsActive() {
			m.StaffOnDuty++
		}
	}
	return m
}

// PopularItem is the name with the highest quantity sold in the window, or
// "None" when nothing sold.
func PopularItem(orders []models.Order, w Window) string {
	qty := map[string]int{}
	best, bestQty := "None", 0
	for _, o := range Filter(orders, w) {
		for _, item := range o.Items {
			qty[item.Name] += item.Quantity
			if n := qty[item.Name]; n > bestQty {
				best, bestQty = item.Name, n
			}
		}
	}
	return best
}
