package store

import (
	"fmt"
	"pos_backend/pkg/models"
	"sort"
	"strings"
	"time"
)

// Tables returns the floor plan.
func (s *AppState) Tables() []models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// UpdateTableStatus sets a table to an explicitly chosen status, RESERVED included.
func (s *AppState) UpdateTableStatus(id string, status models.TableStatus) (models.Table, error) {
	if !status.Valid() {
		return models.Table{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.tableIndex(id)
	if idx < 0 {
		return models.Table{}, notFound("table", id)
	}
	s.setTableStatusLocked(idx, status)
	return s.tables[idx], nil
}

// CycleTable steps a table around AVAILABLE, OCCUPIED, DIRTY.
func (s *AppState) CycleTable(id string) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.tableIndex(id)
	if idx < 0 {
		return models.Table{}, notFound("table", id)
	}
	s.setTableStatusLocked(idx, s.tables[idx].Status.Cycle())
	return s.tables[idx], nil
}

// AddTable creates an AVAILABLE table.
func (s *AppState) AddTable(label string, seats int) (models.Table, error) {
	label = strings.TrimSpace(label)
	if label == "" || seats < 1 {
		return models.Table{}, fmt.Errorf("label and at least one seat are required: %w", ErrInvalidInput)
	}

	table := models.Table{
		ID:     s.newID(),
		Label:  label,
		Seats:  seats,
		Status: models.TableStatusAvailable,
	}

	s.mu.Lock()
	s.tables = append(s.tables, table)
	sortTables(s.tables)
	s.mu.Unlock()

	saved := table
	s.writeInsert("table "+table.ID, &saved)
	return table, nil
}

// DeleteTable removes a table. Orders and reservations naming it are kept.
func (s *AppState) DeleteTable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.tableIndex(id)
	if idx < 0 {
		return notFound("table", id)
	}
	s.tables = append(s.tables[:idx:idx], s.tables[idx+1:]...)
	s.writeDelete("table "+id, &models.Table{ID: id})
	return nil
}

// TableLabel resolves a table id for display.
func (s *AppState) TableLabel(id string) string {
	if id == models.TakeawayTableID {
		return "Takeaway"
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.tableIndex(id); idx >= 0 {
		return s.tables[idx].Label
	}
	return "Unknown"
}

func (s *AppState) setTableStatusLocked(idx int, status models.TableStatus) {
	s.tables[idx].Status = status
	id := s.tables[idx].ID
	s.writeUpdate("table "+id+" status", &models.Table{ID: id, Status: status}, "status")
}

func (s *AppState) tableIndex(id string) int {
	for i := range s.tables {
		if s.tables[i].ID == id {
			return i
		}
	}
	return -1
}

// sortTables orders "Table 2" before "Table 10".
func sortTables(tables []models.Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i].Label, tables[j].Label
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}

// Reservations returns all bookings ordered by time.
func (s *AppState) Reservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, len(s.reservations))
	copy(out, s.reservations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// ReservationInput carries the editable fields of a booking.
type ReservationInput struct {
	TableID      string                   `json:"tableId"`
	CustomerName string                   `json:"customerName"`
	Contact      string                   `json:"contact"`
	Time         time.Time                `json:"time"`
	Guests       int                      `json:"guests"`
	Status       models.ReservationStatus `json:"status"`
	Notes        string                   `json:"notes"`
}

func (in ReservationInput) validate() error {
	if strings.TrimSpace(in.TableID) == "" || strings.TrimSpace(in.CustomerName) == "" || in.Time.IsZero() {
		return fmt.Errorf("table, customer name and time are required: %w", ErrInvalidInput)
	}
	if in.Guests < 1 {
		return fmt.Errorf("guests must be at least 1: %w", ErrInvalidInput)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%q: %w", in.Status, ErrInvalidStatus)
	}
	return nil
}

func (in ReservationInput) apply(r *models.Reservation) {
	r.TableID = strings.TrimSpace(in.TableID)
	r.CustomerName = strings.TrimSpace(in.CustomerName)
	r.Contact = optional(in.Contact)
	r.Time = in.Time
	r.Guests = in.Guests
	r.Notes = optional(in.Notes)
	if in.Status != "" {
		r.Status = in.Status
	}
}

// AddReservation books a table. The table itself is not touched; staff mark
// it RESERVED explicitly when they want to hold it.
func (s *AppState) AddReservation(in ReservationInput) (models.Reservation, error) {
	if err := in.validate(); err != nil {
		return models.Reservation{}, err
	}

	r := models.Reservation{ID: s.newID(), Status: models.ReservationConfirmed}
	in.apply(&r)

	s.mu.Lock()
	s.reservations = append(s.reservations, r)
	s.mu.Unlock()

	saved := r
	s.writeInsert("reservation "+r.ID, &saved)
	return r, nil
}

// UpdateReservation replaces a booking. When the status changes, checking in
// occupies the table and cancelling frees it only if it is still RESERVED.
func (s *AppState) UpdateReservation(id string, in ReservationInput) (models.Reservation, error) {
	if err := in.validate(); err != nil {
		return models.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reservationIndex(id)
	if idx < 0 {
		return models.Reservation{}, notFound("reservation", id)
	}
	previous := s.reservations[idx].Status
	in.apply(&s.reservations[idx])
	r := s.reservations[idx]

	saved := r
	s.writeUpdate("reservation "+id, &saved)

	if r.Status != previous {
		s.applyReservationStatusLocked(r)
	}
	return r, nil
}

// SetReservationStatus changes only the status of a booking.
func (s *AppState) SetReservationStatus(id string, status models.ReservationStatus) (models.Reservation, error) {
	if !status.Valid() {
		return models.Reservation{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reservationIndex(id)
	if idx < 0 {
		return models.Reservation{}, notFound("reservation", id)
	}
	previous := s.reservations[idx].Status
	s.reservations[idx].Status = status
	r := s.reservations[idx]

	s.writeUpdate("reservation "+id+" status", &models.Reservation{ID: id, Status: status}, "status")

	if status != previous {
		s.applyReservationStatusLocked(r)
	}
	return r, nil
}

func (s *AppState) applyReservationStatusLocked(r models.Reservation) {
	t := s.tableIndex(r.TableID)
	if t < 0 {
		return
	}
	switch r.Status {
	case models.ReservationCheckedIn:
		s.setTableStatusLocked(t, models.TableStatusOccupied)
	case models.ReservationCancelled:
		if s.tables[t].Status == models.TableStatusReserved {
			s.setTableStatusLocked(t, models.TableStatusAvailable)
		}
	}
}

// DeleteReservation removes a booking without touching its table.
func (s *AppState) DeleteReservation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reservationIndex(id)
	if idx < 0 {
		return notFound("reservation", id)
	}
	s.reservations = append(s.reservations[:idx:idx], s.reservations[idx+1:]...)
	s.writeDelete("reservation "+id, &models.Reservation{ID: id})
	return nil
}

func (s *AppState) reservationIndex(id string) int {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			return i
		}
	}
	return -1
}

// optional turns a blank form value into a NULL column.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
