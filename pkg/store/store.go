package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"pos_backend/pkg/models"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrItemUnavailable    = errors.New("item is not available for sale")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoStaffRecords     = errors.New("no staff records loaded")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateID        = errors.New("id already exists")
)

// RecordStore is the remote persistence the state mirrors. Collections are
// addressed by model type.
type RecordStore interface {
	SelectAll(ctx context.Context, dest any) error
	Insert(ctx context.Context, records any) error
	Update(ctx context.Context, record any, columns ...string) error
	Delete(ctx context.Context, record any) error
	DeleteAll(ctx context.Context, model any) error
}

// SettingsStore persists SystemSettings locally.
type SettingsStore interface {
	Load() (models.SystemSettings, error)
	Save(models.SystemSettings) error
}

// Options wires an AppState. Store and Writer are required.
type Options struct {
	Store    RecordStore
	Writer   *Writer
	Settings SettingsStore
	Sinks    []EventSink
	Location *time.Location
	Now      func() time.Time
	NewID    func() string
}

// AppState owns every collection in memory. Each mutating method applies its
// change locally first and then queues the matching remote writes; the local
// copy is the source of truth and is never rolled back.
type AppState struct {
	mu sync.RWMutex

	menu         []models.MenuItem
	orders       []models.Order // newest first
	tables       []models.Table
	staff        []models.Staff
	customers    []models.Customer
	reservations []models.Reservation
	settings     models.SystemSettings

	store         RecordStore
	writer        *Writer
	settingsStore SettingsStore
	sinks         []EventSink
	loc           *time.Location
	now           func() time.Time
	newID         func() string
}

// New builds an empty state. Call Load before serving requests.
func New(opts Options) *AppState {
	s := &AppState{
		store:         opts.Store,
		writer:        opts.Writer,
		settingsStore: opts.Settings,
		sinks:         opts.Sinks,
		loc:           opts.Location,
		now:           opts.Now,
		newID:         opts.NewID,
		settings:      models.DefaultSettings(),
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Load reads settings and all six collections. Staff is read first since
// login depends on it. Empty staff, menu and tables collections are seeded
// with the default dataset, written to the store before they are used.
func (s *AppState) Load(ctx context.Context) error {
	settings := models.DefaultSettings()
	if s.settingsStore != nil {
		loaded, err := s.settingsStore.Load()
		if err != nil {
			log.Printf("⚠️  Could not read settings, using defaults: %v", err)
		} else {
			settings = loaded
		}
	}

	var staff []models.Staff
	if err := s.store.SelectAll(ctx, &staff); err != nil {
		return fmt.Errorf("load staff: %w", err)
	}
	if len(staff) == 0 {
		staff = models.DefaultStaff()
		if err := s.store.Insert(ctx, &staff); err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
		log.Printf("🌱 Seeded %d staff accounts", len(staff))
	}
	for i := range staff {
		normalizeStaff(&staff[i])
	}

	var menu []models.MenuItem
	if err := s.store.SelectAll(ctx, &menu); err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	if len(menu) == 0 {
		menu = models.DefaultMenu()
		if err := s.store.Insert(ctx, &menu); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		log.Printf("🌱 Seeded %d menu items", len(menu))
	}

	var tables []models.Table
	if err := s.store.SelectAll(ctx, &tables); err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	if len(tables) == 0 {
		tables = models.DefaultTables()
		if err := s.store.Insert(ctx, &tables); err != nil {
			return fmt.Errorf("seed tables: %w", err)
		}
		log.Printf("🌱 Seeded %d tables", len(tables))
	}
	sortTables(tables)

	var customers []models.Customer
	if err := s.store.SelectAll(ctx, &customers); err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	var orders []models.Order
	if err := s.store.SelectAll(ctx, &orders); err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp.After(orders[j].Timestamp)
	})

	var reservations []models.Reservation
	if err := s.store.SelectAll(ctx, &reservations); err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	s.mu.Lock()
	s.settings = settings
	s.staff = staff
	s.menu = menu
	s.tables = tables
	s.customers = customers
	s.orders = orders
	s.reservations = reservations
	s.mu.Unlock()

	log.Printf("✅ State loaded: %d staff, %d menu items, %d tables, %d orders, %d customers, %d reservations",
		len(staff), len(menu), len(tables), len(orders), len(customers), len(reservations))
	return nil
}

// normalizeStaff is the one place stored role and status tags are parsed.
func normalizeStaff(st *models.Staff) {
	if role, ok := models.ParseRole(string(st.Role)); ok {
		st.Role = role
	} else {
		log.Printf("⚠️  Staff %s has unknown role %q, treating as WAITER", st.ID, st.Role)
		st.Role = models.RoleWaiter
	}
	if status, ok := models.ParseStaffStatus(string(st.Status)); ok {
		st.Status = status
	} else {
		log.Printf("⚠️  Staff %s has unknown status %q, treating as OFF_DUTY", st.ID, st.Status)
		st.Status = models.StaffStatusOffDuty
	}
}

// Location is the business timezone used for day boundaries.
func (s *AppState) Location() *time.Location {
	return s.loc
}

// Now is the state's clock.
func (s *AppState) Now() time.Time {
	return s.now()
}

// SyncFailures lists remote writes that were given up on.
func (s *AppState) SyncFailures() []Failure {
	return s.writer.Failures()
}

// write queues a remote write described for logs and the failure list.
func (s *AppState) write(description string, fn WriteFunc) {
	s.writer.Enqueue(description, fn)
}

func (s *AppState) writeInsert(what string, record any) {
	s.write("insert "+what, func(ctx context.Context) error {
		return s.store.Insert(ctx, record)
	})
}

func (s *AppState) writeUpdate(what string, record any, columns ...string) {
	s.write("update "+what, func(ctx context.Context) error {
		return s.store.Update(ctx, record, columns...)
	})
}

func (s *AppState) writeDelete(what string, record any) {
	s.write("delete "+what, func(ctx context.Context) error {
		return s.store.Delete(ctx, record)
	})
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
