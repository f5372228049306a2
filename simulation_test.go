package powermix

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimulation_Defaults(t *testing.T) {
	c := testCatalog(t)
	s := NewSimulation(c, Policy{})

	if got, want := s.Budget(), USD(50); !got.Equal(want) {
		t.Errorf("Budget() = %v, want %v", got, want)
	}
	if got := s.Add(); got != 0 {
		t.Errorf("Add() = %d, want 0", got)
	}
	if diff := cmp.Diff([]Entry{{Source: "Solar"}}, s.Entries()); diff != "" {
		t.Errorf("Add() mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.AddSource("Wood"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("AddSource(Wood) = %v, want ErrUnknownSource", err)
	}
	if err := s.SetBudget(USD(1000)); !errors.Is(err, ErrBudgetOutOfRange) {
		t.Errorf("SetBudget(1000) = %v, want ErrBudgetOutOfRange", err)
	}
	if got, want := s.Budget(), USD(50); !got.Equal(want) {
		t.Errorf("Budget() after a failed SetBudget = %v, want %v", got, want)
	}
}

func TestSimulation_Report(t *testing.T) {
	c := testCatalog(t)
	s := NewSimulation(c, Policy{})
	if err := s.SetBudget(USD(120)); err != nil {
		t.Fatalf("SetBudget() failed: %v", err)
	}
	s.Add()
	if err := s.SetEntry(0, "Solar", 3); err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	a, err := s.Allocation()
	if err != nil {
		t.Fatalf("Allocation() failed: %v", err)
	}
	if !a.Rows[0].OverAllocated {
		t.Error("row 0 with 3 plants for a max of 2 is not over allocated")
	}
	if got, want := s.Entries()[0].Plants, 3; got != want {
		t.Errorf("plants = %d, want %d", got, want)
	}
}

func TestSimulation_Clamp(t *testing.T) {
	c := testCatalog(t)
	s := NewSimulation(c, Policy{Allocation: ClampOverAllocation})
	if err := s.SetBudget(USD(350)); err != nil {
		t.Fatalf("SetBudget() failed: %v", err)
	}
	s.Add()
	if _, err := s.AddSource("Coal"); err != nil {
		t.Fatalf("AddSource() failed: %v", err)
	}
	if err := s.SetEntry(0, "Solar", 10); err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	if err := s.SetEntry(1, "Coal", 2); err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	want := []Entry{{Source: "Solar", Plants: 3}, {Source: "Coal", Plants: 2}}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	// lowering the budget lowers the rows from the top down.
	if err := s.SetBudget(USD(220)); err != nil {
		t.Fatalf("SetBudget() failed: %v", err)
	}
	want = []Entry{{Source: "Solar", Plants: 3}, {Source: "Coal", Plants: 0}}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	a, err := s.Allocation()
	if err != nil {
		t.Fatalf("Allocation() failed: %v", err)
	}
	if a.OverAllocated() {
		t.Error("clamped allocation is over allocated")
	}
	if got, want := a.TotalRemaining, USD(70); !got.Equal(want) {
		t.Errorf("TotalRemaining = %v, want %v", got, want)
	}

	// removing the first row frees budget, but never raises a row.
	if err := s.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt() failed: %v", err)
	}
	want = []Entry{{Source: "Coal", Plants: 0}}
	if diff := cmp.Diff(want, s.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulation_ErrorsLeaveStateUntouched(t *testing.T) {
	c := testCatalog(t)
	s := NewSimulation(c, Policy{})
	s.Add()
	if err := s.SetEntry(0, "Coal", 1); err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	before := s.Entries()

	if err := s.SetEntry(0, "Coal", -2); !errors.Is(err, ErrNegativePlants) {
		t.Errorf("SetEntry(-2) = %v, want ErrNegativePlants", err)
	}
	if err := s.SetEntry(3, "Coal", 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetEntry(3) = %v, want ErrIndexOutOfRange", err)
	}
	if err := s.RemoveAt(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(1) = %v, want ErrIndexOutOfRange", err)
	}
	if diff := cmp.Diff(before, s.Entries()); diff != "" {
		t.Errorf("entries changed (-want +got):\n%s", diff)
	}
}
