package powermix

import "fmt"

// Simulation is an editing session over a portfolio: a catalog, a budget, the
// rows and the policy applied to them.
//
// Every mutation either fails and leaves the session untouched, or succeeds
// and leaves it in a state that Allocation can report. Under
// ClampOverAllocation, rows are lowered to their allowed maximum after each
// mutation. A Simulation is not safe for concurrent use.
type Simulation struct {
	catalog   *Catalog
	budget    Money
	portfolio *Portfolio
	policy    Policy
}

// NewSimulation starts an empty session with the smallest budget the catalog
// allows.
func NewSimulation(c *Catalog, policy Policy) *Simulation {
	return &Simulation{
		catalog:   c,
		budget:    c.MinBudget(),
		portfolio: NewPortfolio(),
		policy:    policy,
	}
}

func (s *Simulation) Catalog() *Catalog { return s.catalog }
func (s *Simulation) Budget() Money     { return s.budget }
func (s *Simulation) Policy() Policy    { return s.policy }
func (s *Simulation) Len() int          { return s.portfolio.Len() }

// Entries returns a copy of the rows.
func (s *Simulation) Entries() []Entry { return s.portfolio.List() }

// SetBudget changes the total budget. It must lie within the catalog range.
func (s *Simulation) SetBudget(b Money) error {
	if err := s.catalog.CheckBudget(b); err != nil {
		return err
	}
	if b.cur == "" {
		b.cur = s.catalog.currency
	}
	s.budget = b
	return s.settle()
}

// Add appends a row for the first source of the catalog, with no plant, and
// returns its index.
func (s *Simulation) Add() int {
	s.portfolio.Append(s.catalog.profiles[0].name)
	return s.portfolio.Len() - 1
}

// AddSource appends a row for 'source', with no plant, and returns its index.
func (s *Simulation) AddSource(source string) (int, error) {
	if !s.catalog.Has(source) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	s.portfolio.Append(source)
	return s.portfolio.Len() - 1, nil
}

// RemoveAt deletes row i, the rows after it move up by one.
func (s *Simulation) RemoveAt(i int) error {
	if err := s.portfolio.RemoveAt(i); err != nil {
		return err
	}
	return s.settle()
}

// SetEntry replaces row i.
func (s *Simulation) SetEntry(i int, source string, plants int) error {
	if err := s.portfolio.SetEntry(s.catalog, i, source, plants); err != nil {
		return err
	}
	return s.settle()
}

// Allocation runs the allocation pass over the current rows.
func (s *Simulation) Allocation() (*Allocation, error) {
	return Allocate(s.catalog, s.budget, s.portfolio, s.policy.Selection)
}

// Summary aggregates the current rows.
func (s *Simulation) Summary() (Summary, error) {
	return Aggregate(s.catalog, s.portfolio)
}

// Recompute returns both the allocation and the summary.
func (s *Simulation) Recompute() (*Allocation, Summary, error) {
	return Recompute(s.catalog, s.budget, s.portfolio, s.policy)
}

// settle applies the allocation policy. Clamping a row lowers its cost, so a
// single pass from top to bottom is enough: each row sees its final remaining
// budget.
func (s *Simulation) settle() error {
	if s.policy.Allocation != ClampOverAllocation {
		return nil
	}
	remaining := s.budget
	for i, e := range s.portfolio.entries {
		profile, err := s.catalog.Profile(e.Source)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if allowed := AllowedMax(profile, remaining); e.Plants > allowed {
			s.portfolio.entries[i].Plants = allowed
		}
		remaining = remaining.Sub(profile.CostPerPlant().Times(s.portfolio.entries[i].Plants))
	}
	return nil
}
