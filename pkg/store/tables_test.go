package store

import (
	"errors"
	"pos_backend/pkg/models"
	"testing"
	"time"
)

func TestCycleTableRing(t *testing.T) {
	f := newFixture(t)

	want := []models.TableStatus{models.TableStatusOccupied, models.TableStatusDirty, models.TableStatusAvailable}
	for _, status := range want {
		table, err := f.state.CycleTable("t-1")
		if err != nil {
			t.Fatalf("CycleTable: %v", err)
		}
		if table.Status != status {
			t.Fatalf("status = %s, want %s", table.Status, status)
		}
	}

	if _, err := f.state.UpdateTableStatus("t-1", models.TableStatusReserved); err != nil {
		t.Fatalf("UpdateTableStatus: %v", err)
	}
	if table, _ := f.state.CycleTable("t-1"); table.Status != models.TableStatusAvailable {
		t.Errorf("RESERVED cycles to %s, want AVAILABLE", table.Status)
	}

	if _, err := f.state.UpdateTableStatus("t-1", "BROKEN"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("invalid status: err = %v", err)
	}
	if _, err := f.state.CycleTable("t-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown table: err = %v", err)
	}
}

func TestAddAndDeleteTable(t *testing.T) {
	f := newFixture(t)

	table, err := f.state.AddTable("Patio", 6)
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	if table.Status != models.TableStatusAvailable || len(f.state.Tables()) != 13 {
		t.Errorf("after add: %+v, %d tables", table, len(f.state.Tables()))
	}
	if _, err := f.state.AddTable("  ", 2); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank label: err = %v", err)
	}

	if err := f.state.DeleteTable(table.ID); err != nil {
		t.Fatalf("DeleteTable: %v", err)
	}
	if len(f.state.Tables()) != 12 {
		t.Errorf("after delete: %d tables", len(f.state.Tables()))
	}
	if got := f.state.TableLabel(table.ID); got != "Unknown" {
		t.Errorf("label of deleted table = %q", got)
	}
}

func TestTablesSortNaturally(t *testing.T) {
	f := newFixture(t)
	tables := f.state.Tables()
	if tables[1].Label != "Table 2" || tables[11].Label != "Table 12" {
		t.Errorf("order = %s ... %s", tables[1].Label, tables[11].Label)
	}
}

func reservationFor(table string) ReservationInput {
	return ReservationInput{
		TableID:      table,
		CustomerName: "Ama Owusu",
		Contact:      "0244000000",
		Time:         time.Date(2024, 5, 10, 19, 30, 0, 0, time.UTC),
		Guests:       4,
	}
}

func TestReservationStatusSideEffects(t *testing.T) {
	cases := []struct {
		name      string
		before    models.TableStatus
		status    models.ReservationStatus
		wantTable models.TableStatus
	}{
		{"check in occupies reserved table", models.TableStatusReserved, models.ReservationCheckedIn, models.TableStatusOccupied},
		{"check in over available", models.TableStatusAvailable, models.ReservationCheckedIn, models.TableStatusOccupied},
		{"cancel releases reserved table", models.TableStatusReserved, models.ReservationCancelled, models.TableStatusAvailable},
		{"cancel leaves walk-in alone", models.TableStatusOccupied, models.ReservationCancelled, models.TableStatusOccupied},
		{"cancel leaves dirty table alone", models.TableStatusDirty, models.ReservationCancelled, models.TableStatusDirty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if _, err := f.state.UpdateTableStatus("t-4", tc.before); err != nil {
				t.Fatalf("UpdateTableStatus: %v", err)
			}
			r, err := f.state.AddReservation(reservationFor("t-4"))
			if err != nil {
				t.Fatalf("AddReservation: %v", err)
			}
			if r.Status != models.ReservationConfirmed {
				t.Fatalf("new reservation status = %s", r.Status)
			}
			if got := f.table(t, "t-4").Status; got != tc.before {
				t.Fatalf("booking changed the table to %s", got)
			}

			if _, err := f.state.SetReservationStatus(r.ID, tc.status); err != nil {
				t.Fatalf("SetReservationStatus: %v", err)
			}
			if got := f.table(t, "t-4").Status; got != tc.wantTable {
				t.Errorf("table = %s, want %s", got, tc.wantTable)
			}
		})
	}
}

func TestUpdateReservationFiresOnlyOnStatusChange(t *testing.T) {
	f := newFixture(t)

	in := reservationFor("t-6")
	r, _ := f.state.AddReservation(in)

	in.Status = models.ReservationCheckedIn
	if _, err := f.state.UpdateReservation(r.ID, in); err != nil {
		t.Fatalf("UpdateReservation: %v", err)
	}
	if got := f.table(t, "t-6").Status; got != models.TableStatusOccupied {
		t.Fatalf("t-6 = %s after check-in", got)
	}

	// Bus the table, then edit the notes of the checked-in booking.
	f.state.UpdateTableStatus("t-6", models.TableStatusAvailable)
	in.Notes = "birthday"
	updated, err := f.state.UpdateReservation(r.ID, in)
	if err != nil {
		t.Fatalf("UpdateReservation: %v", err)
	}
	if updated.Notes == nil || *updated.Notes != "birthday" {
		t.Errorf("notes = %v", updated.Notes)
	}
	if got := f.table(t, "t-6").Status; got != models.TableStatusAvailable {
		t.Errorf("editing a checked-in booking re-occupied the table: %s", got)
	}
}

func TestReservationDanglingTableAndValidation(t *testing.T) {
	f := newFixture(t)

	r, err := f.state.AddReservation(reservationFor("gone"))
	if err != nil {
		t.Fatalf("AddReservation: %v", err)
	}
	if _, err := f.state.SetReservationStatus(r.ID, models.ReservationCheckedIn); err != nil {
		t.Errorf("check-in on dangling table: %v", err)
	}
	if got := f.state.TableLabel("gone"); got != "Unknown" {
		t.Errorf("label = %q", got)
	}

	bad := reservationFor("t-1")
	bad.Guests = 0
	if _, err := f.state.AddReservation(bad); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero guests: err = %v", err)
	}

	if err := f.state.DeleteReservation(r.ID); err != nil {
		t.Fatalf("DeleteReservation: %v", err)
	}
	if len(f.state.Reservations()) != 0 {
		t.Error("reservation not removed")
	}
}
