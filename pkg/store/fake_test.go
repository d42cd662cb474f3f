package store

import (
	"context"
	"fmt"
	"pos_backend/pkg/models"
	"strings"
	"sync"
	"testing"
	"time"
)

// memoryStore is an in-memory RecordStore that records the writes it receives.
type memoryStore struct {
	mu sync.Mutex

	staff        []models.Staff
	menu         []models.MenuItem
	tables       []models.Table
	orders       []models.Order
	customers    []models.Customer
	reservations []models.Reservation
	revoked      []models.RevokedSession

	ops []string
}

func (m *memoryStore) SelectAll(_ context.Context, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch d := dest.(type) {
	case *[]models.Staff:
		*d = append([]models.Staff(nil), m.staff...)
	case *[]models.MenuItem:
		*d = append([]models.MenuItem(nil), m.menu...)
	case *[]models.Table:
		*d = append([]models.Table(nil), m.tables...)
	case *[]models.Order:
		*d = append([]models.Order(nil), m.orders...)
	case *[]models.Customer:
		*d = append([]models.Customer(nil), m.customers...)
	case *[]models.Reservation:
		*d = append([]models.Reservation(nil), m.reservations...)
	case *[]models.RevokedSession:
		*d = append([]models.RevokedSession(nil), m.revoked...)
	default:
		return fmt.Errorf("unexpected destination %T", dest)
	}
	return nil
}

func (m *memoryStore) Insert(_ context.Context, records any) error {
	m.record("insert", records)
	return nil
}

func (m *memoryStore) Update(_ context.Context, record any, columns ...string) error {
	m.record("update", record)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, record any) error {
	m.record("delete", record)
	return nil
}

func (m *memoryStore) DeleteAll(_ context.Context, model any) error {
	m.record("deleteAll", model)
	return nil
}

func (m *memoryStore) record(op string, v any) {
	m.mu.Lock()
	m.ops = append(m.ops, fmt.Sprintf("%s %T", op, v))
	m.mu.Unlock()
}

// count reports how many recorded writes match op and type, e.g. ("update", "*models.Table").
func (m *memoryStore) count(op, typ string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.ops {
		if entry == op+" "+typ {
			n++
		}
	}
	return n
}

func (m *memoryStore) reset() {
	m.mu.Lock()
	m.ops = nil
	m.mu.Unlock()
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	state  *AppState
	store  *memoryStore
	writer *Writer
	clock  *testClock
}

// newFixture loads a state from an empty store, so it starts with the default dataset.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, &memoryStore{})
}

func newFixtureWith(t *testing.T, mem *memoryStore, sinks ...EventSink) *fixture {
	t.Helper()

	writer := NewWriter(WriterConfig{Workers: 2, MaxAttempts: 3, Backoff: time.Millisecond})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		writer.Close(ctx)
	})

	clock := &testClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	seq := 0
	state := New(Options{
		Store:    mem,
		Writer:   writer,
		Sinks:    sinks,
		Location: time.UTC,
		Now:      clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%04d-generated", seq)
		},
	})
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	mem.reset()
	return &fixture{state: state, store: mem, writer: writer, clock: clock}
}

func (f *fixture) staff(t *testing.T, id string) models.Staff {
	t.Helper()
	member, ok := f.state.StaffByID(id)
	if !ok {
		t.Fatalf("staff %s not found", id)
	}
	return member
}

func (f *fixture) table(t *testing.T, id string) models.Table {
	t.Helper()
	for _, table := range f.state.Tables() {
		if table.ID == id {
			return table
		}
	}
	t.Fatalf("table %s not found", id)
	return models.Table{}
}

func (f *fixture) item(t *testing.T, id string) models.MenuItem {
	t.Helper()
	item, err := f.state.MenuItem(id)
	if err != nil {
		t.Fatalf("MenuItem(%s): %v", id, err)
	}
	return item
}

func (f *fixture) itemByName(t *testing.T, name string) models.MenuItem {
	t.Helper()
	for _, item := range f.state.Menu() {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	t.Fatalf("menu item %q not found", name)
	return models.MenuItem{}
}
