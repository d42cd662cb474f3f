package models

import (
	"time"
)

// MenuItem model - a sellable dish or drink, or an inventory-only cooking essential
type MenuItem struct {
	ID          string       `gorm:"primaryKey;column:id" json:"id"`
	Name        string       `gorm:"not null;column:name" json:"name"`
	Description string       `gorm:"column:description" json:"description"`
	Price       float64      `gorm:"not null;default:0;column:price" json:"price"`
	Category    ItemCategory `gorm:"type:text;not null;column:category" json:"category"`
	Image       string       `gorm:"column:image" json:"image"`
	Stock       int          `gorm:"not null;default:0;column:stock" json:"stock"`
	IsAvailable bool         `gorm:"default:true;column:is_available" json:"isAvailable"`
	Unit        *string      `gorm:"column:unit" json:"unit,omitempty"`
	CostPrice   *float64     `gorm:"column:cost_price" json:"costPrice,omitempty"`
	Supplier    *string      `gorm:"column:supplier" json:"supplier,omitempty"`
}

// TableName specifies the table name for MenuItem model
func (MenuItem) TableName() string {
	return "menu"
}

// OrderItem is a snapshot of a menu item taken at checkout. It is stored
// inside the order row, never as a reference to the live menu.
type OrderItem struct {
	ItemID   string       `json:"itemId"`
	Name     string       `json:"name"`
	Price    float64      `json:"price"`
	Quantity int          `json:"quantity"`
	Category ItemCategory `json:"category"`
	Notes    string       `json:"notes,omitempty"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order model
type Order struct {
	ID           string      `gorm:"primaryKey;column:id" json:"id"`
	TableID      string      `gorm:"not null;column:table_id" json:"tableId"`
	Items        []OrderItem `gorm:"type:jsonb;serializer:json;column:items" json:"items"`
	Status       OrderStatus `gorm:"type:text;not null;column:status" json:"status"`
	Timestamp    time.Time   `gorm:"not null;column:timestamp" json:"timestamp"`
	Total        float64     `gorm:"not null;column:total" json:"total"`
	Notes        *string     `gorm:"column:notes" json:"notes,omitempty"`
	CustomerName *string     `gorm:"column:customer_name" json:"customerName,omitempty"`
	StaffID      *string     `gorm:"column:staff_id" json:"staffId,omitempty"`
	StaffName    *string     `gorm:"column:staff_name" json:"staffName,omitempty"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// IsTakeaway reports whether the order has no table.
func (o Order) IsTakeaway() bool {
	return o.TableID == TakeawayTableID
}

// NeedsKitchen reports whether at least one line is not a drink.
func (o Order) NeedsKitchen() bool {
	for _, item := range o.Items {
		if !item.Category.IsDrink() {
			return true
		}
	}
	return false
}

// KitchenItems returns the lines the kitchen prepares (drinks removed).
func (o Order) KitchenItems() []OrderItem {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if !item.Category.IsDrink() {
			items = append(items, item)
		}
	}
	return items
}

// HandledBy reports whether staffID created the order.
func (o Order) HandledBy(staffID string) bool {
	return o.StaffID != nil && *o.StaffID == staffID
}

// Table model - a physical table on the floor
type Table struct {
	ID     string      `gorm:"primaryKey;column:id" json:"id"`
	Label  string      `gorm:"not null;column:label" json:"label"`
	Seats  int         `gorm:"not null;default:2;column:seats" json:"seats"`
	Status TableStatus `gorm:"type:text;not null;default:'AVAILABLE';column:status" json:"status"`
}

// TableName specifies the table name for Table model
func (Table) TableName() string {
	return "tables"
}

// Staff model - the id doubles as the login username
type Staff struct {
	ID       string      `gorm:"primaryKey;column:id" json:"id"`
	Name     string      `gorm:"not null;column:name" json:"name"`
	Role     Role        `gorm:"type:text;not null;column:role" json:"role"`
	Status   StaffStatus `gorm:"type:text;not null;default:'ACTIVE';column:status" json:"status"`
	Passcode string      `gorm:"not null;column:passcode" json:"-"` // Don't expose passcode in JSON
	Email    *string     `gorm:"column:email" json:"email,omitempty"`
	Phone    *string     `gorm:"column:phone" json:"phone,omitempty"`
}

// TableName specifies the table name for Staff model
func (Staff) TableName() string {
	return "staff"
}

// IsActive reports whether the staff member may log in.
func (s Staff) IsActive() bool {
	return s.Status == StaffStatusActive
}

// Customer model
type Customer struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Phone         string    `gorm:"not null;column:phone" json:"phone"`
	Email         *string   `gorm:"column:email" json:"email,omitempty"`
	LoyaltyPoints int       `gorm:"not null;default:0;column:loyalty_points" json:"loyaltyPoints"`
	Notes         *string   `gorm:"column:notes" json:"notes,omitempty"`
	LastVisit     time.Time `gorm:"column:last_visit" json:"lastVisit"`
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}

// IsVIP is derived from the loyalty balance and never stored.
func (c Customer) IsVIP() bool {
	return c.LoyaltyPoints >= VIPThreshold
}

// Reservation model
type Reservation struct {
	ID           string            `gorm:"primaryKey;column:id" json:"id"`
	TableID      string            `gorm:"not null;column:table_id" json:"tableId"`
	CustomerName string            `gorm:"not null;column:customer_name" json:"customerName"`
	Contact      *string           `gorm:"column:contact" json:"contact,omitempty"`
	Time         time.Time         `gorm:"not null;column:time" json:"time"`
	Guests       int               `gorm:"not null;default:1;column:guests" json:"guests"`
	Status       ReservationStatus `gorm:"type:text;not null;default:'CONFIRMED';column:status" json:"status"`
	Notes        *string           `gorm:"column:notes" json:"notes,omitempty"`
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}

// RevokedSession model - a session key signed out by logout or inactivity
type RevokedSession struct {
	Key       string    `gorm:"primaryKey;column:session_key" json:"sessionKey"`
	StaffID   string    `gorm:"column:staff_id" json:"staffId"`
	RevokedAt time.Time `gorm:"not null;column:revoked_at" json:"revokedAt"`
}

// TableName specifies the table name for RevokedSession model
func (RevokedSession) TableName() string {
	return "revoked_sessions"
}
