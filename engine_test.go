package powermix

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocate_WorkedExample(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Solar", Plants: 2})

	a, err := Allocate(c, USD(120), p, KeepSelection)
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	row := a.Rows[0]
	if got, want := row.Cost, USD(100); !got.Equal(want) {
		t.Errorf("row cost = %v, want %v", got, want)
	}
	if got, want := row.RemainingAfter, USD(20); !got.Equal(want) {
		t.Errorf("remaining after row = %v, want %v", got, want)
	}
	if got, want := row.Max, 2; got != want {
		t.Errorf("row max = %d, want %d", got, want)
	}
	if diff := cmp.Diff([]string{"Coal", "Solar"}, row.Options); diff != "" {
		t.Errorf("row options mismatch (-want +got):\n%s", diff)
	}

	p.Append("Coal")
	a, err = Allocate(c, USD(120), p, KeepSelection)
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	coal := a.Rows[1]
	if got, want := coal.RemainingBefore, USD(20); !got.Equal(want) {
		t.Errorf("remaining before coal = %v, want %v", got, want)
	}
	if got, want := coal.Max, 0; got != want {
		t.Errorf("coal max = %d, want %d", got, want)
	}
	if coal.Unconfirmable {
		t.Error("coal is unconfirmable, want it kept while budget remains")
	}
	if coal.OverAllocated {
		t.Error("coal with no plant is over allocated")
	}
	if got, want := a.TotalRemaining, USD(20); !got.Equal(want) {
		t.Errorf("TotalRemaining = %v, want %v", got, want)
	}

	a, err = Allocate(c, USD(120), p, StrictSelection)
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if !a.Rows[1].Unconfirmable {
		t.Error("coal is confirmable under strict selection with 20 left")
	}
}

func TestAllocate_EmptyPortfolio(t *testing.T) {
	c := testCatalog(t)
	for _, b := range []float64{50, 120, 349.5, 350} {
		a, err := Allocate(c, USD(b), NewPortfolio(), KeepSelection)
		if err != nil {
			t.Fatalf("Allocate() failed: %v", err)
		}
		if !a.TotalAllocated.IsZero() {
			t.Errorf("TotalAllocated = %v, want 0", a.TotalAllocated)
		}
		if !a.TotalRemaining.Equal(USD(b)) {
			t.Errorf("TotalRemaining = %v, want %v", a.TotalRemaining, USD(b))
		}
		if len(a.Rows) != 0 {
			t.Errorf("len(Rows) = %d, want 0", len(a.Rows))
		}
	}
}

func TestAllocate_OverAllocated(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Coal", Plants: 1}, Entry{Source: "Solar", Plants: 1})

	a, err := Allocate(c, USD(120), p, KeepSelection)
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if a.Rows[0].OverAllocated {
		t.Error("row 0 is over allocated")
	}
	if !a.Rows[1].OverAllocated {
		t.Error("row 1 is not over allocated")
	}
	if !a.OverAllocated() {
		t.Error("OverAllocated() = false, want true")
	}
	if got, want := a.TotalRemaining, USD(-30); !got.Equal(want) {
		t.Errorf("TotalRemaining = %v, want %v", got, want)
	}
	if a.Rows[1].Unconfirmable {
		t.Error("row 1 lost its selection while some budget remains")
	}
}

// Removing row k gives the same allocation as never inserting it, except for
// the row indices.
func TestAllocate_RemoveEquivalence(t *testing.T) {
	c := testCatalog(t)
	entries := []Entry{
		{Source: "Solar", Plants: 1},
		{Source: "Coal", Plants: 1},
		{Source: "Solar", Plants: 1},
		{Source: "Coal", Plants: 1},
	}
	for k := range entries {
		removed := NewPortfolio(entries...)
		if err := removed.RemoveAt(k); err != nil {
			t.Fatalf("RemoveAt(%d) failed: %v", k, err)
		}
		var others []Entry
		others = append(others, entries[:k]...)
		others = append(others, entries[k+1:]...)
		never := NewPortfolio(others...)

		got, err := Allocate(c, USD(350), removed, KeepSelection)
		if err != nil {
			t.Fatalf("Allocate() failed: %v", err)
		}
		want, err := Allocate(c, USD(350), never, KeepSelection)
		if err != nil {
			t.Fatalf("Allocate() failed: %v", err)
		}
		gotJSON, _ := got.MarshalJSON()
		wantJSON, _ := want.MarshalJSON()
		if diff := cmp.Diff(string(wantJSON), string(gotJSON)); diff != "" {
			t.Errorf("removing row %d mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestAllocate_UnknownSource(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Wood"})
	if _, err := Allocate(c, USD(120), p, KeepSelection); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("Allocate() = %v, want ErrUnknownSource", err)
	}
}

func TestRecompute(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Solar", Plants: 2})

	if _, _, err := Recompute(c, USD(10), p, Policy{}); !errors.Is(err, ErrBudgetOutOfRange) {
		t.Errorf("Recompute(10) = %v, want ErrBudgetOutOfRange", err)
	}

	a, s, err := Recompute(c, USD(120), p, Policy{})
	if err != nil {
		t.Fatalf("Recompute() failed: %v", err)
	}
	if !a.TotalAllocated.Equal(s.Cost) {
		t.Errorf("allocated %v differs from summary cost %v", a.TotalAllocated, s.Cost)
	}
}

func TestPortfolio_SetEntry(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Solar", Plants: 1})

	testCases := []struct {
		name   string
		index  int
		source string
		plants int
		want   error
	}{
		{"index too large", 1, "Solar", 1, ErrIndexOutOfRange},
		{"negative index", -1, "Solar", 1, ErrIndexOutOfRange},
		{"unknown source", 0, "Wood", 1, ErrUnknownSource},
		{"negative plants", 0, "Coal", -1, ErrNegativePlants},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.SetEntry(c, tc.index, tc.source, tc.plants)
			if !errors.Is(err, tc.want) {
				t.Errorf("SetEntry() = %v, want %v", err, tc.want)
			}
			if diff := cmp.Diff([]Entry{{Source: "Solar", Plants: 1}}, p.List()); diff != "" {
				t.Errorf("portfolio changed on error (-want +got):\n%s", diff)
			}
		})
	}

	if err := p.SetEntry(c, 0, "Coal", 5); err != nil {
		t.Fatalf("SetEntry() failed: %v", err)
	}
	if diff := cmp.Diff([]Entry{{Source: "Coal", Plants: 5}}, p.List()); diff != "" {
		t.Errorf("SetEntry() mismatch (-want +got):\n%s", diff)
	}
	if err := p.RemoveAt(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(1) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestAllocate_BudgetCurrency(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(Entry{Source: "Solar", Plants: 1})
	if _, err := Allocate(c, M(120, "EUR"), p, KeepSelection); !errors.Is(err, ErrBudgetOutOfRange) {
		t.Errorf("Allocate() with an EUR budget = %v, want ErrBudgetOutOfRange", err)
	}
}
