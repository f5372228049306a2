package powermix

import (
	"fmt"
	"iter"
)

// Entry is one row of a portfolio: how many plants of which source.
type Entry struct {
	Source string `json:"source" yaml:"source"`
	Plants int    `json:"plants" yaml:"plants"`
}

// Portfolio is the ordered list of entries chosen by a user.
//
// Rows are addressed by their 0-based position; removing a row renumbers the
// rows after it. A Portfolio is not safe for concurrent use.
type Portfolio struct {
	entries []Entry
}

// NewPortfolio creates a portfolio holding a copy of entries.
func NewPortfolio(entries ...Entry) *Portfolio {
	p := &Portfolio{entries: make([]Entry, len(entries))}
	copy(p.entries, entries)
	return p
}

// Len returns the number of rows.
func (p *Portfolio) Len() int { return len(p.entries) }

// At returns the entry at row i.
func (p *Portfolio) At(i int) (Entry, error) {
	if err := p.check(i); err != nil {
		return Entry{}, err
	}
	return p.entries[i], nil
}

// Entries iterates over rows in order.
func (p *Portfolio) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// List returns a copy of the rows.
func (p *Portfolio) List() []Entry {
	l := make([]Entry, len(p.entries))
	copy(l, p.entries)
	return l
}

// Append adds a row for 'source' with no plant.
func (p *Portfolio) Append(source string) {
	p.entries = append(p.entries, Entry{Source: source})
}

// RemoveAt deletes row i.
func (p *Portfolio) RemoveAt(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	return nil
}

// SetEntry replaces row i. The portfolio is left untouched if the row, the
// source or the plant count is invalid.
func (p *Portfolio) SetEntry(c *Catalog, i int, source string, plants int) error {
	if err := p.check(i); err != nil {
		return err
	}
	if !c.Has(source) {
		return fmt.Errorf("row %d: %w: %q", i, ErrUnknownSource, source)
	}
	if plants < 0 {
		return fmt.Errorf("row %d: %w: %d", i, ErrNegativePlants, plants)
	}
	p.entries[i] = Entry{Source: source, Plants: plants}
	return nil
}

func (p *Portfolio) check(i int) error {
	if i < 0 || i >= len(p.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(p.entries))
	}
	return nil
}
