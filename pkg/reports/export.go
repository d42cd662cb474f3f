package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// RevenueFileName is the download name of the revenue export.
func RevenueFileName(w Window) string {
	return fmt.Sprintf("revenue_report_%s_to_%s.csv", w.StartDate(), w.EndDate())
}

// StaffFileName is the download name of the staff performance export.
func StaffFileName(w Window) string {
	return fmt.Sprintf("staff_performance_%s_to_%s.csv", w.StartDate(), w.EndDate())
}

// WriteRevenueCSV writes one row per day of the trend.
func WriteRevenueCSV(out io.Writer, trend []DayRevenue) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Date", "Revenue", "Orders"}); err != nil {
		return err
	}
	for _, d := range trend {
		if err := cw.Write([]string{d.Date, formatAmount(d.Revenue), strconv.Itoa(d.Orders)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStaffCSV writes the staff performance table.
func WriteStaffCSV(out io.Writer, rows []StaffRow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Staff Member", "Role", "Orders Handled", "Revenue Generated", "Efficiency Rating"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Name, string(r.Role), strconv.Itoa(r.OrdersHandled), formatAmount(r.Revenue), r.Rating}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
