package powermix

import (
	"encoding/json"
	"testing"
)

func TestAggregate(t *testing.T) {
	c := testCatalog(t)
	p := NewPortfolio(
		Entry{Source: "Solar", Plants: 2},
		Entry{Source: "Coal", Plants: 1},
	)
	s, err := Aggregate(c, p)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	testCases := []struct {
		name string
		got  Quantity
		want Quantity
	}{
		{"energy", s.Energy, Q(4)},                  // 2*1 + 1*2
		{"waste", s.ToxicWaste, Q(204)},             // 2*2 + 2*100
		{"co2", s.CO2, Q(1680)},                     // 2*40 + 2*800
		{"score", s.WeightedScore, Q(20).Div(Q(3))}, // (2*9 + 1*2) / 3
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.Equal(tc.want) {
				t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
			}
		})
	}
	if got, want := s.Cost, USD(200); !got.Equal(want) {
		t.Errorf("cost = %v, want %v", got, want)
	}
	if got, want := s.Plants, 3; got != want {
		t.Errorf("plants = %d, want %d", got, want)
	}
}

func TestAggregate_NoPlant(t *testing.T) {
	c := testCatalog(t)
	for _, p := range []*Portfolio{
		NewPortfolio(),
		NewPortfolio(Entry{Source: "Solar"}, Entry{Source: "Coal"}),
	} {
		s, err := Aggregate(c, p)
		if err != nil {
			t.Fatalf("Aggregate() failed: %v", err)
		}
		if !s.WeightedScore.IsZero() {
			t.Errorf("WeightedScore = %v, want 0", s.WeightedScore)
		}
		if !s.Cost.IsZero() || !s.Energy.IsZero() {
			t.Errorf("Aggregate() = %+v, want zero totals", s)
		}
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	c := energyCatalog(t)
	entries := []Entry{
		{Source: "Nuclear", Plants: 1},
		{Source: "Wind", Plants: 10},
		{Source: "Solar", Plants: 20},
		{Source: "Gas", Plants: 3},
	}
	want, err := Aggregate(c, NewPortfolio(entries...))
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}
	wantJSON, _ := json.Marshal(want)

	permutations := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range permutations {
		shuffled := make([]Entry, len(entries))
		for i, j := range perm {
			shuffled[i] = entries[j]
		}
		got, err := Aggregate(c, NewPortfolio(shuffled...))
		if err != nil {
			t.Fatalf("Aggregate() failed: %v", err)
		}
		gotJSON, _ := json.Marshal(got)
		if string(gotJSON) != string(wantJSON) {
			t.Errorf("Aggregate(%v) = %s, want %s", perm, gotJSON, wantJSON)
		}
	}
}
