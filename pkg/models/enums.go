package models

import "strings"

// TakeawayTableID marks an order with no physical table.
const TakeawayTableID = "TAKEAWAY"

// VIPThreshold is the loyalty point balance at which a customer counts as VIP.
const VIPThreshold = 100

// OrderStatus enum
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// Next returns the kitchen workflow successor of s. Only PENDING, PREPARING
// and READY advance; everything else reports false.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusServed, true
	}
	return s, false
}

// Overridable reports whether an administrator may set s directly.
func (s OrderStatus) Overridable() bool {
	switch s {
	case OrderStatusPaid, OrderStatusServed, OrderStatusPending, OrderStatusCancelled:
		return true
	}
	return false
}

// TableStatus enum
type TableStatus string

const (
	TableStatusAvailable TableStatus = "AVAILABLE"
	TableStatusOccupied  TableStatus = "OCCUPIED"
	TableStatusReserved  TableStatus = "RESERVED"
	TableStatusDirty     TableStatus = "DIRTY"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusDirty:
		return true
	}
	return false
}

// Cycle returns the next status on the manual ring
// AVAILABLE -> OCCUPIED -> DIRTY -> AVAILABLE. RESERVED leaves the ring at AVAILABLE.
func (s TableStatus) Cycle() TableStatus {
	switch s {
	case TableStatusAvailable:
		return TableStatusOccupied
	case TableStatusOccupied:
		return TableStatusDirty
	}
	return TableStatusAvailable
}

// ItemCategory enum
type ItemCategory string

const (
	CategoryFood             ItemCategory = "FOOD"
	CategoryDessert          ItemCategory = "DESSERT"
	CategoryAlcoholic        ItemCategory = "ALCOHOLIC"
	CategorySoftDrink        ItemCategory = "SOFT_DRINK"
	CategoryWater            ItemCategory = "WATER"
	CategorySpirit           ItemCategory = "SPIRIT"
	CategoryWhisky           ItemCategory = "WHISKY"
	CategorySmoothie         ItemCategory = "SMOOTHIE"
	CategoryCookingEssential ItemCategory = "COOKING_ESSENTIAL"
)

// DrinkCategories are auto-decremented on sale and never shown to the kitchen.
var DrinkCategories = []ItemCategory{
	CategoryAlcoholic,
	CategorySoftDrink,
	CategoryWater,
	CategorySpirit,
	CategoryWhisky,
	CategorySmoothie,
}

func (c ItemCategory) Valid() bool {
	return c == CategoryFood || c == CategoryDessert || c == CategoryCookingEssential || c.IsDrink()
}

// IsDrink reports whether c is one of the drink categories.
func (c ItemCategory) IsDrink() bool {
	for _, d := range DrinkCategories {
		if c == d {
			return true
		}
	}
	return false
}

// Label is the display name, e.g. SOFT_DRINK -> "SOFT DRINK".
func (c ItemCategory) Label() string {
	return strings.Replace(string(c), "_", " ", 1)
}

// IsDrinkCategory is the package-level form of ItemCategory.IsDrink.
func IsDrinkCategory(c ItemCategory) bool {
	return c.IsDrink()
}

// Role enum
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleAdmin     Role = "ADMIN"
	RoleWaiter    Role = "WAITER"
	RoleChef      Role = "CHEF"
	RoleBartender Role = "BARTENDER"
)

// ParseRole normalizes a role tag read from a request or a stored record.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleManager, RoleAdmin, RoleWaiter, RoleChef, RoleBartender:
		return r, true
	}
	return "", false
}

// IsManagement reports whether the role sees every order and the full dashboard.
func (r Role) IsManagement() bool {
	return r == RoleManager || r == RoleAdmin
}

// StaffStatus enum
type StaffStatus string

const (
	StaffStatusActive  StaffStatus = "ACTIVE"
	StaffStatusOffDuty StaffStatus = "OFF_DUTY"
)

func ParseStaffStatus(s string) (StaffStatus, bool) {
	st := StaffStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StaffStatusActive, StaffStatusOffDuty:
		return st, true
	}
	return "", false
}

// ReservationStatus enum
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCheckedIn ReservationStatus = "CHECKED_IN"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCheckedIn, ReservationCancelled:
		return true
	}
	return false
}
