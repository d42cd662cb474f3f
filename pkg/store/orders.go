package store

import (
	"fmt"
	"pos_backend/pkg/models"
	"sort"
	"strings"
	"time"
)

// CheckoutLine is one cart line as sent by the point of sale.
type CheckoutLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// CheckoutRequest describes a cart to be turned into an order.
type CheckoutRequest struct {
	TableID      string         `json:"tableId"`
	CustomerName string         `json:"customerName"`
	Notes        string         `json:"notes"`
	Lines        []CheckoutLine `json:"items"`
}

// OrderFilter narrows the order history. Zero values match everything.
type OrderFilter struct {
	Search string
	Status models.OrderStatus
	Day    time.Time
}

// OrderHistory is a filtered order list with its summary.
type OrderHistory struct {
	Orders         []models.Order `json:"orders"`
	Revenue        float64        `json:"revenue"`
	PaidCount      int            `json:"paidCount"`
	CancelledCount int            `json:"cancelledCount"`
}

// PlaceOrder turns a cart into an order. Lines are priced from the live menu
// and snapshotted, so later menu edits never alter the order. A cart made up
// only of drinks skips the kitchen and starts SERVED.
func (s *AppState) PlaceOrder(req CheckoutRequest, by models.Staff) (models.Order, error) {
	if len(req.Lines) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	tableID := strings.TrimSpace(req.TableID)
	if tableID == "" {
		tableID = models.TakeawayTableID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tableIdx := -1
	if tableID != models.TakeawayTableID {
		tableIdx = s.tableIndex(tableID)
		if tableIdx < 0 {
			return models.Order{}, notFound("table", tableID)
		}
	}

	items := make([]models.OrderItem, 0, len(req.Lines))
	allDrinks := true
	for _, line := range req.Lines {
		if line.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%s: %w", line.ItemID, ErrInvalidQuantity)
		}
		idx := s.menuIndex(line.ItemID)
		if idx < 0 {
			return models.Order{}, fmt.Errorf("%s: %w", line.ItemID, ErrItemUnavailable)
		}
		item := s.menu[idx]
		if !item.IsAvailable || item.Category == models.CategoryCookingEssential {
			return models.Order{}, fmt.Errorf("%s: %w", item.Name, ErrItemUnavailable)
		}
		if !item.Category.IsDrink() {
			allDrinks = false
		}
		items = append(items, models.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: line.Quantity,
			Category: item.Category,
			Notes:    strings.TrimSpace(line.Notes),
		})
	}

	status := models.OrderStatusPending
	if allDrinks {
		status = models.OrderStatusServed
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		customer = "Guest"
	}

	order := models.Order{
		ID:           s.newID(),
		TableID:      tableID,
		Items:        items,
		Status:       status,
		Timestamp:    s.now(),
		Total:        models.ComputeCheckout(items, s.settings.TaxRate).Total,
		CustomerName: &customer,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		order.Notes = &notes
	}
	if by.ID != "" {
		staffID, staffName := by.ID, by.Name
		order.StaffID = &staffID
		order.StaffName = &staffName
	}

	s.orders = append([]models.Order{order}, s.orders...)
	saved := order
	s.writeInsert("order "+order.ID, &saved)

	if tableIdx >= 0 {
		s.setTableStatusLocked(tableIdx, models.TableStatusOccupied)
	}

	// Drink stock is counted; food availability is left to the kitchen.
	for _, line := range items {
		if !line.Category.IsDrink() {
			continue
		}
		idx := s.menuIndex(line.ItemID)
		stock := s.menu[idx].Stock - line.Quantity
		if stock < 0 {
			stock = 0
		}
		s.menu[idx].Stock = stock
		s.writeUpdate("stock of "+line.ItemID, &models.MenuItem{ID: line.ItemID, Stock: stock}, "stock")
	}

	s.emit(OrderEvent{Kind: EventOrderPlaced, Order: order, At: order.Timestamp})
	return order, nil
}

// AdvanceOrder moves an order one step along PENDING, PREPARING, READY, SERVED.
func (s *AppState) AdvanceOrder(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.orderIndex(id)
	if idx < 0 {
		return models.Order{}, notFound("order", id)
	}
	next, ok := s.orders[idx].Status.Next()
	if !ok {
		return models.Order{}, fmt.Errorf("%s cannot advance: %w", s.orders[idx].Status, ErrInvalidTransition)
	}
	return s.setOrderStatusLocked(idx, next), nil
}

// SetOrderStatus is the administrative override. It may jump to PAID, SERVED,
// PENDING or CANCELLED from any state.
func (s *AppState) SetOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	if !status.Overridable() {
		return models.Order{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.orderIndex(id)
	if idx < 0 {
		return models.Order{}, notFound("order", id)
	}
	return s.setOrderStatusLocked(idx, status), nil
}

// setOrderStatusLocked applies a status change. Payment of a table order
// marks its table DIRTY; nothing else touches tables. The total is kept.
func (s *AppState) setOrderStatusLocked(idx int, status models.OrderStatus) models.Order {
	previous := s.orders[idx].Status
	s.orders[idx].Status = status
	order := s.orders[idx]

	s.writeUpdate("order "+order.ID+" status", &models.Order{ID: order.ID, Status: status}, "status")

	if status == models.OrderStatusPaid && !order.IsTakeaway() {
		if t := s.tableIndex(order.TableID); t >= 0 {
			s.setTableStatusLocked(t, models.TableStatusDirty)
		}
	}

	s.emit(OrderEvent{Kind: EventOrderStatusChanged, Order: order, Previous: previous, At: s.now()})
	return order
}

// DeleteOrder removes an order record. Stock and table state are left as they are.
func (s *AppState) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.orderIndex(id)
	if idx < 0 {
		return notFound("order", id)
	}
	s.orders = append(s.orders[:idx:idx], s.orders[idx+1:]...)
	s.writeDelete("order "+id, &models.Order{ID: id})
	return nil
}

// Orders returns every order, newest first.
func (s *AppState) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// GetOrder returns one order if viewer may see it.
func (s *AppState) GetOrder(id string, viewer models.Staff) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.orderIndex(id)
	if idx < 0 || !canView(s.orders[idx], viewer) {
		return models.Order{}, notFound("order", id)
	}
	return s.orders[idx], nil
}

// ListOrders returns the history visible to viewer: management sees every
// order, everyone else only the orders they took.
func (s *AppState) ListOrders(filter OrderFilter, viewer models.Staff) OrderHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	history := OrderHistory{Orders: []models.Order{}}

	for _, o := range s.orders {
		if !canView(o, viewer) {
			continue
		}
		if search != "" && !matchesOrderSearch(o, search) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !filter.Day.IsZero() && !sameDay(o.Timestamp, filter.Day, s.loc) {
			continue
		}

		history.Orders = append(history.Orders, o)
		history.Revenue += o.Total
		switch o.Status {
		case models.OrderStatusPaid:
			history.PaidCount++
		case models.OrderStatusCancelled:
			history.CancelledCount++
		}
	}

	sort.SliceStable(history.Orders, func(i, j int) bool {
		return history.Orders[i].Timestamp.After(history.Orders[j].Timestamp)
	})
	return history
}

// KitchenQueue lists orders still waiting on the kitchen, oldest first, with
// drink lines removed.
func (s *AppState) KitchenQueue() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queue := []models.Order{}
	for _, o := range s.orders {
		switch o.Status {
		case models.OrderStatusServed, models.OrderStatusPaid, models.OrderStatusCancelled:
			continue
		}
		if !o.NeedsKitchen() {
			continue
		}
		o.Items = o.KitchenItems()
		queue = append(queue, o)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Timestamp.Before(queue[j].Timestamp)
	})
	return queue
}

func canView(o models.Order, viewer models.Staff) bool {
	return viewer.Role.IsManagement() || o.HandledBy(viewer.ID)
}

func matchesOrderSearch(o models.Order, search string) bool {
	if strings.Contains(strings.ToLower(o.ID), search) ||
		strings.Contains(strings.ToLower(o.TableID), search) {
		return true
	}
	return o.CustomerName != nil && strings.Contains(strings.ToLower(*o.CustomerName), search)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func (s *AppState) orderIndex(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}
