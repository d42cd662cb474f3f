package store

import (
	"pos_backend/pkg/models"
	"time"
)

// Business is the header printed on receipts.
type Business struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ReceiptLine is an order line with its amount.
type ReceiptLine struct {
	models.OrderItem
	Amount float64 `json:"amount"`
}

// Receipt is everything needed to render a printed bill.
type Receipt struct {
	OrderID     string             `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	Timestamp   time.Time          `json:"timestamp"`
	Status      models.OrderStatus `json:"status"`
	Table       string             `json:"table"`
	Customer    string             `json:"customer"`
	Server      string             `json:"server"`
	Lines       []ReceiptLine      `json:"lines"`
	Subtotal    float64            `json:"subtotal"`
	TaxAmount   float64            `json:"taxAmount"`
	Total       float64            `json:"total"`
	TaxRate     float64            `json:"taxRate"`
	Currency    string             `json:"currency"`
	Business    Business           `json:"business"`
	Footer      string             `json:"footer"`
}

// Receipt renders an order visible to viewer. Subtotal and tax are split out
// of the stored total at the tax rate configured now, not the one in force
// when the order was placed.
func (s *AppState) Receipt(id string, viewer models.Staff) (Receipt, error) {
	order, err := s.GetOrder(id, viewer)
	if err != nil {
		return Receipt{}, err
	}
	settings := s.Settings()

	customer := "Guest"
	if order.CustomerName != nil && *order.CustomerName != "" {
		customer = *order.CustomerName
	}

	server := "Unknown"
	if order.StaffName != nil && *order.StaffName != "" {
		server = *order.StaffName
	} else if order.StaffID != nil {
		if member, ok := s.StaffByID(*order.StaffID); ok {
			server = member.Name
		}
	}

	number := order.ID
	if len(number) > 8 {
		number = number[:8]
	}

	lines := make([]ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ReceiptLine{OrderItem: item, Amount: models.RoundCents(item.LineTotal())})
	}

	totals := models.ReverseReceipt(order.Total, settings.TaxRate)
	return Receipt{
		OrderID:     order.ID,
		OrderNumber: number,
		Timestamp:   order.Timestamp.In(s.loc),
		Status:      order.Status,
		Table:       s.TableLabel(order.TableID),
		Customer:    customer,
		Server:      server,
		Lines:       lines,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
		TaxRate:     settings.TaxRate,
		Currency:    settings.Currency,
		Business: Business{
			Name:    settings.Name,
			Address: settings.Address,
			Phone:   settings.Phone,
			Email:   settings.Email,
		},
		Footer: settings.ReceiptFooter,
	}, nil
}
