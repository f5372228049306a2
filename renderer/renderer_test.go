package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/powermix"
)

func energyCatalog(t *testing.T) *powermix.Catalog {
	t.Helper()
	c, err := powermix.OpenCatalog("../testdata/energy_data.csv", "", "USD")
	if err != nil {
		t.Fatalf("OpenCatalog() failed: %v", err)
	}
	return c
}

// simulation returns a session at 1B with Nuclear 1 and Solar 20 plants.
func simulation(t *testing.T, c *powermix.Catalog) *powermix.Simulation {
	t.Helper()
	s := powermix.NewSimulation(c, powermix.Policy{})
	b, _ := c.ParseMoney("1B")
	if err := s.SetBudget(b); err != nil {
		t.Fatalf("SetBudget() failed: %v", err)
	}
	for _, e := range []powermix.Entry{{Source: "Nuclear", Plants: 1}, {Source: "Solar", Plants: 20}} {
		i, err := s.AddSource(e.Source)
		if err != nil {
			t.Fatalf("AddSource() failed: %v", err)
		}
		if err := s.SetEntry(i, e.Source, e.Plants); err != nil {
			t.Fatalf("SetEntry() failed: %v", err)
		}
	}
	return s
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestSourceMarkdown(t *testing.T) {
	c := energyCatalog(t)
	solar, err := c.Profile("Solar")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, SourceMarkdown(solar),
		"# Details: Solar",
		"- Energy/plant: 0.25 TWh",
		"- Cost/TWh: 41.00 Million USD",
		"- CO₂/TWh: 48,000 tons",
		"- Waste/TWh: 10 tons",
		"- Score: 9",
		"- Max Plants: 200",
	)
}

func TestCatalogMarkdown(t *testing.T) {
	got := CatalogMarkdown(energyCatalog(t))
	assertContains(t, got,
		"# Energy Sources",
		"| Nuclear | 8 | 110.00 Million USD | 880.00 Million USD |",
		"Allowed budget: **10.25 Million USD** to **29.753 Billion USD**",
	)
}

func TestSimulationMarkdown(t *testing.T) {
	c := energyCatalog(t)
	s := simulation(t, c)

	got, err := SimulationMarkdown(s, false)
	if err != nil {
		t.Fatalf("SimulationMarkdown() failed: %v", err)
	}
	assertContains(t, got,
		"| #1 | Nuclear | 1 | 1 | 880.00 Million USD | 120.00 Million USD |",
		"| #2 | Solar | 20 | 11 | 205.00 Million USD | -85.00 Million USD |",
		"### Warnings",
		"- Row #2: 20 plants of Solar exceed the 11 allowed",
		"- Total: 1.000 Billion USD",
		"- Allocated: 1.085 Billion USD",
		"- Remaining: -85.00 Million USD",
	)
	if strings.Contains(got, "## Results") {
		t.Errorf("results rendered before calculation:\n%s", got)
	}

	got, err = SimulationMarkdown(s, true)
	if err != nil {
		t.Fatalf("SimulationMarkdown() failed: %v", err)
	}
	assertContains(t, got,
		"## Results",
		"- Energy: 13.00 TWh",
		"- Cost: 1.085 Billion USD",
		"- Waste: 290 tons",
		"- CO₂: 336,000 tons",
		"- Avg Score: 8.90",
	)
}

func TestAllocationMarkdown_Empty(t *testing.T) {
	s := powermix.NewSimulation(energyCatalog(t), powermix.Policy{})
	a, err := s.Allocation()
	if err != nil {
		t.Fatal(err)
	}
	got := AllocationMarkdown(a)
	assertContains(t, got, "No source selected yet.")
	if strings.Contains(got, "Warnings") {
		t.Errorf("warnings rendered for an empty portfolio:\n%s", got)
	}
}

func TestWritePDF(t *testing.T) {
	s := simulation(t, energyCatalog(t))
	var buf bytes.Buffer
	if err := WritePDF(&buf, s, true); err != nil {
		t.Fatalf("WritePDF() failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("WritePDF() did not produce a pdf document: %q", buf.Bytes()[:min(20, buf.Len())])
	}
}
