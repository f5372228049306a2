package renderer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/etnz/powermix"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMarginLeft  = 15.0
	pdfMarginTop   = 15.0
	pdfMarginRight = 15.0
)

// pdfReport writes a simulation to a single PDF document.
type pdfReport struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string // UTF-8 to the core fonts encoding
	width float64
}

// WritePDF exports the session rows, the budget status and, when 'calculated'
// is set, the results.
func WritePDF(w io.Writer, s *powermix.Simulation, calculated bool) error {
	a, sum, err := s.Recompute()
	if err != nil {
		return err
	}

	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", "")}
	r.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	r.pdf.SetAutoPageBreak(true, 15)
	r.pdf.SetTitle("Data Center Energy Simulation", true)
	r.pdf.SetCreator("pmx", true)
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := r.pdf.GetPageSize()
	r.width = pageWidth - pdfMarginLeft - pdfMarginRight

	r.pdf.AddPage()
	r.addTitle()
	r.addRows(a)
	r.addBudget(a)
	if calculated {
		r.addResults(sum)
	}

	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("could not write pdf: %w", err)
	}
	return nil
}

func (r *pdfReport) addTitle() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.CellFormat(r.width, 12, "Data Center Energy Simulation", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(r.width, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *pdfReport) section(title string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.CellFormat(r.width, 8, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
}

func (r *pdfReport) addRows(a *powermix.Allocation) {
	r.section("Energy Sources")
	if len(a.Rows) == 0 {
		r.pdf.CellFormat(r.width, 6, "No source selected yet.", "", 1, "L", false, 0, "")
		r.pdf.Ln(4)
		return
	}

	header := []string{"Row", "Source", "Plants", "Max", "Cost", "Remaining"}
	widths := []float64{12, 48, 18, 18, 42, 42}
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(245, 247, 250)
	for i, h := range header {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 10)
	for _, row := range a.Rows {
		cells := []string{
			strconv.Itoa(row.Index + 1),
			row.Source,
			strconv.Itoa(row.Plants),
			strconv.Itoa(row.Max),
			row.Cost.Compact(),
			row.RemainingAfter.Compact(),
		}
		if row.OverAllocated {
			r.pdf.SetTextColor(180, 0, 0)
		}
		for i, c := range cells {
			align := "R"
			if i == 1 {
				align = "L"
			}
			r.pdf.CellFormat(widths[i], 6, r.tr(c), "1", 0, align, false, 0, "")
		}
		r.pdf.SetTextColor(0, 0, 0)
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addBudget(a *powermix.Allocation) {
	r.section("Budget Status")
	r.keyValues([][2]string{
		{"Total", a.Budget.Compact()},
		{"Allocated", a.TotalAllocated.Compact()},
		{"Remaining", a.TotalRemaining.Compact()},
	})
}

func (r *pdfReport) addResults(s powermix.Summary) {
	r.section("Results")
	r.keyValues([][2]string{
		{"Energy", s.Energy.Fixed(2) + " TWh"},
		{"Cost", s.Cost.Compact()},
		{"Waste", s.ToxicWaste.Grouped(0) + " tons"},
		{"CO2", s.CO2.Grouped(0) + " tons"},
		{"Avg Score", s.WeightedScore.Fixed(2)},
	})
}

func (r *pdfReport) keyValues(kv [][2]string) {
	for _, p := range kv {
		r.pdf.CellFormat(40, 6, r.tr(p[0]+":"), "", 0, "L", false, 0, "")
		r.pdf.CellFormat(r.width-40, 6, r.tr(p[1]), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}
