package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/powermix"
	md "github.com/nao1215/markdown"
)

// CatalogMarkdown renders the table of sources and the budget range they
// allow.
func CatalogMarkdown(c *powermix.Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Energy Sources").LF()
	rows := make([][]string, 0, c.Len())
	for p := range c.Profiles() {
		rows = append(rows, []string{
			p.Name(),
			p.EnergyPerPlant().String(),
			p.CostPerTWh().Compact(),
			p.CostPerPlant().Compact(),
			p.CO2PerTWh().Grouped(0),
			p.ToxicWastePerTWh().Grouped(0),
			p.Score().String(),
			strconv.Itoa(p.MaxPlants()),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Source", "Energy/plant (TWh)", "Cost/TWh", "Cost/plant", "CO₂/TWh (t)", "Waste/TWh (t)", "Score", "Max Plants"},
		Rows:   rows,
	})
	doc.PlainTextf("Allowed budget: %s to %s", md.Bold(c.MinBudget().Compact()), md.Bold(c.MaxBudget().Compact()))

	return doc.String()
}

// AllocationMarkdown renders one line per portfolio row with what it costs
// and what it leaves, followed by the rows that need attention.
func AllocationMarkdown(a *powermix.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Energy Sources").LF()
	if len(a.Rows) == 0 {
		doc.PlainText("No source selected yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(a.Rows))
	for _, r := range a.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.Index+1),
			r.Source,
			strconv.Itoa(r.Plants),
			strconv.Itoa(r.Max),
			r.Cost.Compact(),
			r.RemainingAfter.Compact(),
			strings.Join(r.Options, ", "),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Row", "Source", "Plants", "Max", "Cost", "Remaining", "Options"},
		Rows:   rows,
	})

	out := doc.String()
	var warnings strings.Builder
	ConditionalBlock(&warnings, func(w io.Writer) bool {
		var items []string
		for _, r := range a.Rows {
			if r.OverAllocated {
				items = append(items, fmt.Sprintf("Row #%d: %d plants of %s exceed the %d allowed", r.Index+1, r.Plants, r.Source, r.Max))
			}
			if r.Unconfirmable {
				items = append(items, fmt.Sprintf("Row #%d: %s is not affordable any more", r.Index+1, r.Source))
			}
		}
		if len(items) == 0 {
			return false
		}
		warn := md.NewMarkdown(w)
		warn.H3("Warnings").LF()
		warn.BulletList(items...)
		warn.Build()
		return true
	})
	if warnings.Len() > 0 {
		out += "\n" + warnings.String()
	}
	return out
}

// SimulationMarkdown renders a whole session: its rows, its budget status and,
// when 'calculated' is set, its results.
func SimulationMarkdown(s *powermix.Simulation, calculated bool) (string, error) {
	a, sum, err := s.Recompute()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(AllocationMarkdown(a))
	b.WriteString("\n")
	b.WriteString(ReportMarkdown(a, sum, calculated))
	return b.String(), nil
}
