package store

import (
	"context"
	"errors"
	"pos_backend/pkg/models"
	"strings"
	"testing"
	"time"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)

	if _, err := f.state.UpdateStaff("s2", StaffInput{Name: "Jane Smith", Role: "CHEF", Status: "OFF_DUTY"}); err != nil {
		t.Fatalf("UpdateStaff: %v", err)
	}

	cases := []struct {
		name     string
		id, code string
		want     error
	}{
		{"manager", "s1", "1234", nil},
		{"admin", "admin", "0000", nil},
		{"wrong passcode", "s1", "9999", ErrInvalidCredentials},
		{"unknown id", "nobody", "1234", ErrInvalidCredentials},
		{"off duty", "s2", "1111", ErrInvalidCredentials},
		{"id is case sensitive", "S1", "1234", ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			member, err := f.state.Login(tc.id, tc.code)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if tc.want == nil && member.ID != tc.id {
				t.Errorf("logged in as %q", member.ID)
			}
		})
	}
}

func TestLoginWithoutStaffRecords(t *testing.T) {
	state := New(Options{Store: &memoryStore{}, Writer: NewWriter(WriterConfig{})})
	if _, err := state.Login("s1", "1234"); !errors.Is(err, ErrNoStaffRecords) {
		t.Errorf("err = %v, want ErrNoStaffRecords", err)
	}
}

func TestLoginWithHashedPasscode(t *testing.T) {
	f := newFixture(t)

	member, err := f.state.AddStaff(StaffInput{ID: "kofi", Name: "Kofi", Role: " bartender ", Passcode: "4321"})
	if err != nil {
		t.Fatalf("AddStaff: %v", err)
	}
	if member.Role != models.RoleBartender || !strings.HasPrefix(member.Passcode, "$2") {
		t.Fatalf("stored member = %+v", member)
	}
	if _, err := f.state.Login("kofi", "4321"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := f.state.AddStaff(StaffInput{ID: "kofi", Name: "Other", Role: "WAITER", Passcode: "1111"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate id: err = %v", err)
	}
	if _, err := f.state.AddStaff(StaffInput{Name: "X", Role: "JANITOR", Passcode: "1111"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown role: err = %v", err)
	}
}

func TestRestoreSession(t *testing.T) {
	f := newFixture(t)

	if _, ok := f.state.RestoreSession("s3"); !ok {
		t.Fatal("active staff not restored")
	}
	f.state.UpdateStaff("s3", StaffInput{Name: "Mike Johnson", Role: "WAITER", Status: "OFF_DUTY"})
	if _, ok := f.state.RestoreSession("s3"); ok {
		t.Error("off-duty staff restored")
	}
	f.state.DeleteStaff("s1")
	if _, ok := f.state.RestoreSession("s1"); ok {
		t.Error("deleted staff restored")
	}
}

func TestRevokedSessionsRoundTrip(t *testing.T) {
	revokedAt := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	mem := &memoryStore{revoked: []models.RevokedSession{{Key: "k-old", StaffID: "s2", RevokedAt: revokedAt}}}
	f := newFixtureWith(t, mem)

	revs, err := f.state.RevokedSessions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 1 || revs[0].Key != "k-old" || !revs[0].RevokedAt.Equal(revokedAt) {
		t.Errorf("revoked = %+v", revs)
	}

	f.store.reset()
	f.state.SaveRevocation(models.RevokedSession{Key: "k-new", StaffID: "s3", RevokedAt: revokedAt})
	f.writer.Drain()
	if n := f.store.count("insert", "*models.RevokedSession"); n != 1 {
		t.Errorf("revocation inserts = %d, want 1", n)
	}
}

func TestLoadNormalizesStoredStaff(t *testing.T) {
	mem := &memoryStore{staff: []models.Staff{
		{ID: "m", Name: "Mary", Role: " manager", Status: "active", Passcode: "1"},
		{ID: "x", Name: "Xav", Role: "owner", Status: "ACTIVE", Passcode: "2"},
		{ID: "y", Name: "Yaw", Role: "CHEF", Status: "sleeping", Passcode: "3"},
	}}
	f := newFixtureWith(t, mem)

	m := f.staff(t, "m")
	if m.Role != models.RoleManager || m.Status != models.StaffStatusActive {
		t.Errorf("m = %s/%s", m.Role, m.Status)
	}
	if x := f.staff(t, "x"); x.Role != models.RoleWaiter {
		t.Errorf("unknown role loaded as %s", x.Role)
	}
	if y := f.staff(t, "y"); y.Status != models.StaffStatusOffDuty {
		t.Errorf("unknown status loaded as %s", y.Status)
	}
	if len(f.state.StaffMembers()) != 3 {
		t.Error("existing staff should not be reseeded")
	}
}

func TestLoadSeedsEmptyCollections(t *testing.T) {
	mem := &memoryStore{}
	state := New(Options{Store: mem, Writer: NewWriter(WriterConfig{})})
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if n := mem.count("insert", "*[]models.Staff"); n != 1 {
		t.Errorf("staff seeded %d times", n)
	}
	if n := mem.count("insert", "*[]models.MenuItem"); n != 1 {
		t.Errorf("menu seeded %d times", n)
	}
	if n := mem.count("insert", "*[]models.Table"); n != 1 {
		t.Errorf("tables seeded %d times", n)
	}
	if len(state.StaffMembers()) != 4 || len(state.Tables()) != 12 || len(state.Menu()) != 20 {
		t.Errorf("loaded %d staff, %d tables, %d menu items", len(state.StaffMembers()), len(state.Tables()), len(state.Menu()))
	}
	if len(state.Orders()) != 0 {
		t.Error("orders should start empty")
	}
}

func TestCustomersFilterAndStats(t *testing.T) {
	f := newFixture(t)
	longAgo := f.clock.Now().AddDate(0, -3, 0)

	add := func(name, phone string, points int, lastVisit *time.Time) {
		t.Helper()
		if _, err := f.state.AddCustomer(CustomerInput{Name: name, Phone: phone, LoyaltyPoints: points, LastVisit: lastVisit}); err != nil {
			t.Fatalf("AddCustomer: %v", err)
		}
	}
	add("Alice Frempong", "0244123456", 150, &longAgo)
	add("Kwame Mensah", "0501239876", 50, nil)
	add("Sarah Osei", "0555678901", 320, nil)

	cases := []struct {
		name   string
		filter CustomerFilter
		want   []string
	}{
		{"all by points", CustomerFilter{}, []string{"Sarah Osei", "Alice Frempong", "Kwame Mensah"}},
		{"vip", CustomerFilter{Segment: "vip"}, []string{"Sarah Osei", "Alice Frempong"}},
		{"new", CustomerFilter{Segment: "NEW"}, []string{"Sarah Osei", "Kwame Mensah"}},
		{"name search", CustomerFilter{Search: "kwa"}, []string{"Kwame Mensah"}},
		{"phone search", CustomerFilter{Search: "0555"}, []string{"Sarah Osei"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list := f.state.Customers(tc.filter)
			if len(list.Customers) != len(tc.want) {
				t.Fatalf("got %d customers, want %d", len(list.Customers), len(tc.want))
			}
			for i, name := range tc.want {
				if list.Customers[i].Name != name {
					t.Errorf("customers[%d] = %s, want %s", i, list.Customers[i].Name, name)
				}
			}
			if list.Stats != (CustomerStats{TotalProfiles: 3, VIPCount: 2, TotalPoints: 520}) {
				t.Errorf("stats = %+v", list.Stats)
			}
		})
	}

	if _, err := f.state.AddCustomer(CustomerInput{Name: "No Phone"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing phone: err = %v", err)
	}
}
