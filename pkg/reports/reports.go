// Package reports derives revenue, traffic and staff figures from the order
// history. Every function here is a pure projection; nothing is cached or stored.
package reports

import (
	"fmt"
	"pos_backend/pkg/models"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Window is an inclusive range of calendar days in a business location.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	loc   *time.Location
}

// NewWindow spans from the start of from's day to the last instant of to's day.
func NewWindow(from, to time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	return Window{
		Start: startOfDay(from, loc),
		End:   startOfDay(to, loc).AddDate(0, 0, 1).Add(-time.Nanosecond),
		loc:   loc,
	}
}

// ParseWindow reads "2006-01-02" dates. A blank to defaults to today and a
// blank from to a week before to.
func ParseWindow(from, to string, now time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}

	end := now.In(loc)
	if to = strings.TrimSpace(to); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return Window{}, fmt.Errorf("invalid to date %q", to)
		}
		end = t
	}

	start := end.AddDate(0, 0, -7)
	if from = strings.TrimSpace(from); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return Window{}, fmt.Errorf("invalid from date %q", from)
		}
		start = t
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("from date must not be after to date")
	}
	return NewWindow(start, end, loc), nil
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days lists the midnight of every calendar day in the window.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartDate and EndDate format the bounds as "2006-01-02".
func (w Window) StartDate() string { return w.Start.Format(dateLayout) }
func (w Window) EndDate() string   { return w.End.Format(dateLayout) }

func (w Window) location() *time.Location {
	if w.loc == nil {
		return time.Local
	}
	return w.loc
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Filter keeps the non-cancelled orders placed inside the window.
func Filter(orders []models.Order, w Window) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled || !w.Contains(o.Timestamp) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PeriodRevenue sums the totals of the orders that Filter keeps.
func PeriodRevenue(orders []models.Order, w Window) float64 {
	total := 0.0
	for _, o := range Filter(orders, w) {
		total += o.Total
	}
	return total
}

// DayRevenue is one point of the daily trend.
type DayRevenue struct {
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DailyTrend has one entry per day of the window, empty days included.
func DailyTrend(orders []models.Order, w Window) []DayRevenue {
	loc := w.location()
	days := w.Days()
	trend := make([]DayRevenue, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := d.Format(dateLayout)
		trend[i] = DayRevenue{Date: key, Name: d.Format("Jan 2")}
		index[key] = i
	}

	for _, o := range Filter(orders, w) {
		i, ok := index[o.Timestamp.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		trend[i].Revenue += o.Total
		trend[i].Orders++
	}
	return trend
}

// CategorySales is the line revenue of one item category.
type CategorySales struct {
	Category models.ItemCategory `json:"category"`
	Name     string              `json:"name"`
	Value    float64             `json:"value"`
}

// CategoryPerformance sums price x quantity per category, highest first.
func CategoryPerformance(orders []models.Order, w Window) []CategorySales {
	totals := map[models.ItemCategory]float64{}
	var seen []models.ItemCategory
	for _, o := range Filter(orders, w) {
		for _, item := range o.Items {
			if _, ok := totals[item.Category]; !ok {
				seen = append(seen, item.Category)
			}
			totals[item.Category] += item.LineTotal()
		}
	}

	out := make([]CategorySales, 0, len(seen))
	for _, c := range seen {
		out = append(out, CategorySales{Category: c, Name: c.Label(), Value: totals[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// First and last hour shown by HourlyTraffic.
const (
	FirstTrafficHour = 8
	LastTrafficHour  = 23
)

// HourCount is the number of orders placed during one hour of the day.
type HourCount struct {
	Hour   int    `json:"hour"`
	Time   string `json:"time"`
	Orders int    `json:"orders"`
}

// HourlyTraffic buckets orders by local hour and reports 8:00 through 23:00.
func HourlyTraffic(orders []models.Order, w Window) []HourCount {
	loc := w.location()
	var buckets [24]int
	for _, o := range Filter(orders, w) {
		buckets[o.Timestamp.In(loc).Hour()]++
	}

	out := make([]HourCount, 0, LastTrafficHour-FirstTrafficHour+1)
	for h := FirstTrafficHour; h <= LastTrafficHour; h++ {
		out = append(out, HourCount{Hour: h, Time: fmt.Sprintf("%d:00", h), Orders: buckets[h]})
	}
	return out
}

// SourceShare is a rounded percentage of orders.
type SourceShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// OrderSources splits orders into dine-in and takeaway. It is empty when no
// order matches.
func OrderSources(orders []models.Order, w Window) []SourceShare {
	dineIn, takeaway := 0, 0
	for _, o := range Filter(orders, w) {
		if o.IsTakeaway() {
			takeaway++
		} else {
			dineIn++
		}
	}
	total := dineIn + takeaway
	if total == 0 {
		return []SourceShare{}
	}
	return []SourceShare{
		{Name: "Dine In", Value: percent(dineIn, total)},
		{Name: "Takeaway", Value: percent(takeaway, total)},
	}
}

// percent rounds half up like the reporting UI always has.
func percent(part, total int) int {
	return int(float64(part)/float64(total)*100 + 0.5)
}

// NoRating marks a staff member without orders in the window.
const NoRating = "-"

// StaffFilter narrows StaffPerformance. Empty fields and "ALL" match everything.
type StaffFilter struct {
	Role   string
	Search string
}

// StaffRow is one line of the staff performance table.
type StaffRow struct {
	StaffID       string      `json:"staffId"`
	Name          string      `json:"name"`
	Role          models.Role `json:"role"`
	OrdersHandled int         `json:"ordersHandled"`
	Revenue       float64     `json:"salesGenerated"`
	Rating        string      `json:"rating"`
}

// StaffPerformance attributes filtered orders to the staff member who placed
// them. Rows are sorted by revenue, highest first.
func StaffPerformance(orders []models.Order, staff []models.Staff, w Window, filter StaffFilter) []StaffRow {
	type tally struct {
		orders  int
		revenue float64
	}
	stats := map[string]*tally{}
	for _, o := range Filter(orders, w) {
		if o.StaffID == nil || *o.StaffID == "" {
			continue
		}
		t, ok := stats[*o.StaffID]
		if !ok {
			t = &tally{}
			stats[*o.StaffID] = t
		}
		t.orders++
		t.revenue += o.Total
	}

	role := strings.ToUpper(strings.TrimSpace(filter.Role))
	if role == "ALL" {
		role = ""
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	rows := []StaffRow{}
	for _, member := range staff {
		if role != "" && !strings.Contains(string(member.Role), role) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(member.Name), search) {
			continue
		}
		row := StaffRow{StaffID: member.ID, Name: member.Name, Role: member.Role, Rating: NoRating}
		if t, ok := stats[member.ID]; ok {
			row.OrdersHandled = t.orders
			row.Revenue = t.revenue
			row.Rating = EfficiencyRating(t.revenue / float64(t.orders))
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	return rows
}

// EfficiencyRating maps an average order value onto 1.0 to 5.0.
func EfficiencyRating(avgOrderValue float64) string {
	rating := avgOrderValue/50 + 2.5
	if rating > 5 {
		rating = 5
	}
	if rating < 1 {
		rating = 1
	}
	return fmt.Sprintf("%.1f", rating)
}

// Summary is the headline block of the reports page.
type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"avgOrderValue"`
	UniqueGuests      int     `json:"uniqueGuests"`
}

// Summarize totals the filtered orders. Guests are counted by distinct customer name.
func Summarize(orders []models.Order, w Window) Summary {
	filtered := Filter(orders, w)
	guests := map[string]struct{}{}
	s := Summary{TotalOrders: len(filtered)}
	for _, o := range filtered {
		s.TotalRevenue += o.Total
		name := ""
		if o.CustomerName != nil {
			name = *o.CustomerName
		}
		guests[name] = struct{}{}
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	s.UniqueGuests = len(guests)
	return s
}
