package powermix

import (
	"fmt"
	"slices"
)

// Row is the outcome of the allocation pass for one portfolio entry.
type Row struct {
	Index           int
	Source          string
	Plants          int
	CostPerPlant    Money
	Max             int // plants the remaining budget allows
	Cost            Money
	RemainingBefore Money
	RemainingAfter  Money
	Options         []string // sources the row can select

	// OverAllocated is set when Plants exceeds Max.
	OverAllocated bool
	// Unconfirmable is set when Source is not among Options.
	Unconfirmable bool
}

func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", r.Index)
	w.Append("source", r.Source)
	w.Append("plants", r.Plants)
	w.Append("costPerPlant", r.CostPerPlant)
	w.Append("max", r.Max)
	w.Append("cost", r.Cost)
	w.Append("remainingBefore", r.RemainingBefore)
	w.Append("remainingAfter", r.RemainingAfter)
	w.Append("options", r.Options)
	w.Optional("overAllocated", r.OverAllocated)
	w.Optional("unconfirmable", r.Unconfirmable)
	return w.MarshalJSON()
}

// Allocation is the result of a pass over a portfolio.
type Allocation struct {
	Budget         Money
	Rows           []Row
	TotalAllocated Money
	TotalRemaining Money
}

// OverAllocated reports whether any row exceeds its allowed maximum.
func (a *Allocation) OverAllocated() bool {
	for _, r := range a.Rows {
		if r.OverAllocated {
			return true
		}
	}
	return false
}

func (a *Allocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("budget", a.Budget)
	w.Append("rows", a.Rows)
	w.Append("allocated", a.TotalAllocated)
	w.Append("remaining", a.TotalRemaining)
	return w.MarshalJSON()
}

// Allocate runs the allocation pass: rows are visited in order, each one
// consuming its cost from what the rows above left of the budget.
//
// Allocate does not check the budget range, see Recompute.
func Allocate(c *Catalog, budget Money, p *Portfolio, selection SelectionPolicy) (*Allocation, error) {
	if budget.cur != "" && budget.cur != c.currency {
		return nil, fmt.Errorf("%w: budget in %s, catalog is in %s", ErrBudgetOutOfRange, budget.cur, c.currency)
	}
	a := &Allocation{
		Budget: budget,
		Rows:   make([]Row, 0, p.Len()),
	}
	allocated := M(0, c.currency)
	for i, e := range p.Entries() {
		profile, err := c.Profile(e.Source)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		remaining := budget.Sub(allocated)
		cpp := profile.CostPerPlant()
		cost := cpp.Times(e.Plants)
		allocated = allocated.Add(cost)

		row := Row{
			Index:           i,
			Source:          e.Source,
			Plants:          e.Plants,
			CostPerPlant:    cpp,
			Max:             AllowedMax(profile, remaining),
			Cost:            cost,
			RemainingBefore: remaining,
			RemainingAfter:  budget.Sub(allocated),
			Options:         AffordableSources(c, remaining, e.Source, selection),
		}
		row.OverAllocated = row.Plants > row.Max
		row.Unconfirmable = !slices.Contains(row.Options, row.Source)
		a.Rows = append(a.Rows, row)
	}
	a.TotalAllocated = allocated
	a.TotalRemaining = budget.Sub(allocated)
	return a, nil
}

// Recompute validates the budget then computes both the allocation and the
// summary of a portfolio.
func Recompute(c *Catalog, budget Money, p *Portfolio, policy Policy) (*Allocation, Summary, error) {
	if err := c.CheckBudget(budget); err != nil {
		return nil, Summary{}, err
	}
	a, err := Allocate(c, budget, p, policy.Selection)
	if err != nil {
		return nil, Summary{}, err
	}
	s, err := Aggregate(c, p)
	if err != nil {
		return nil, Summary{}, err
	}
	return a, s, nil
}
