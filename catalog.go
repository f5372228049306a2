package powermix

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Catalog columns, as named in the energy data sheet.
const (
	ColSource           = "Source"
	ColTotalCostsPerTWh = "Total_costs_per_twh"
	ColEnergyPerPlant   = "Energy_per_plant"
	ColTotalPlants      = "total_plants"
	ColWasteCost        = "waste_cost"
	ColToxicWasteTons   = "toxic_waste_tons"
	ColCO2PerTWh        = "co2_per_twh"
	ColScore            = "score"
)

// Columns lists every column a catalog table must provide.
var Columns = []string{
	ColSource,
	ColTotalCostsPerTWh,
	ColEnergyPerPlant,
	ColTotalPlants,
	ColWasteCost,
	ColToxicWasteTons,
	ColCO2PerTWh,
	ColScore,
}

// Catalog is the immutable set of source profiles used by a simulation run.
//
// Profiles keep the order they were loaded in. The budget range is computed
// once when the catalog is created.
type Catalog struct {
	currency  string
	profiles  []SourceProfile
	index     map[string]int
	minBudget Money
	maxBudget Money
}

// NewCatalog creates a catalog from profiles whose money values are all
// expressed in 'currency'.
func NewCatalog(currency string, profiles ...SourceProfile) (*Catalog, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, &DataFormatError{Err: fmt.Errorf("catalog has no source")}
	}

	c := &Catalog{
		currency:  currency,
		profiles:  make([]SourceProfile, 0, len(profiles)),
		index:     make(map[string]int, len(profiles)),
		maxBudget: M(0, currency),
	}
	for i, p := range profiles {
		record := i + 1
		if strings.TrimSpace(p.name) == "" {
			return nil, formatErrorf(record, ColSource, "empty source name")
		}
		if _, exists := c.index[p.name]; exists {
			return nil, formatErrorf(record, ColSource, "source %q is already defined", p.name)
		}
		if p.energyPerPlant.IsNegative() {
			return nil, formatErrorf(record, ColEnergyPerPlant, "negative energy per plant %s", p.energyPerPlant)
		}
		if p.toxicWastePerTWh.IsNegative() {
			return nil, formatErrorf(record, ColToxicWasteTons, "negative waste %s", p.toxicWastePerTWh)
		}
		if p.co2PerTWh.IsNegative() {
			return nil, formatErrorf(record, ColCO2PerTWh, "negative emissions %s", p.co2PerTWh)
		}
		if p.maxPlants < 0 {
			return nil, formatErrorf(record, ColTotalPlants, "negative plant count %d", p.maxPlants)
		}
		for _, col := range []struct {
			name string
			m    *Money
		}{{ColTotalCostsPerTWh, &p.baseCostPerTWh}, {ColWasteCost, &p.wasteCostPerTWh}} {
			if col.m.cur == "" {
				col.m.cur = currency
			}
			if col.m.cur != currency {
				return nil, formatErrorf(record, col.name, "cost in %s, catalog is in %s", col.m.cur, currency)
			}
		}
		if p.CostPerPlant().IsNegative() {
			return nil, formatErrorf(record, ColTotalCostsPerTWh, "negative cost per plant %s", p.CostPerPlant())
		}

		c.index[p.name] = len(c.profiles)
		c.profiles = append(c.profiles, p)

		cpp := p.CostPerPlant()
		if i == 0 || cpp.LessThan(c.minBudget) {
			c.minBudget = cpp
		}
		c.maxBudget = c.maxBudget.Add(p.MaxSourceCost())
	}
	return c, nil
}

// LoadCatalog builds a catalog out of a raw table, one record per source.
// Money columns are read in 'currency'.
func LoadCatalog(t Table, currency string) (*Catalog, error) {
	profiles := make([]SourceProfile, 0, len(t))
	for i, rec := range t {
		p, err := rec.profile(i+1, currency)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return NewCatalog(currency, profiles...)
}

// profile reads a single record. 'n' is the 1-based record number for errors.
func (r Record) profile(n int, currency string) (SourceProfile, error) {
	var s SourceSpec

	name, ok := r[ColSource]
	if !ok || name == nil {
		return SourceProfile{}, formatErrorf(n, ColSource, "missing value")
	}
	s.Name = strings.TrimSpace(fmt.Sprint(name))

	quantity := func(col string) (Quantity, error) {
		d, err := parseDecimal(r[col])
		if err != nil {
			return Quantity{}, &DataFormatError{Record: n, Column: col, Err: err}
		}
		return Quantity{value: d}, nil
	}
	var err error
	if s.EnergyPerPlant, err = quantity(ColEnergyPerPlant); err != nil {
		return SourceProfile{}, err
	}
	base, err := quantity(ColTotalCostsPerTWh)
	if err != nil {
		return SourceProfile{}, err
	}
	s.BaseCostPerTWh = M(base.value, currency)
	waste, err := quantity(ColWasteCost)
	if err != nil {
		return SourceProfile{}, err
	}
	s.WasteCostPerTWh = M(waste.value, currency)
	if s.ToxicWastePerTWh, err = quantity(ColToxicWasteTons); err != nil {
		return SourceProfile{}, err
	}
	if s.CO2PerTWh, err = quantity(ColCO2PerTWh); err != nil {
		return SourceProfile{}, err
	}
	if s.Score, err = quantity(ColScore); err != nil {
		return SourceProfile{}, err
	}
	plants, err := quantity(ColTotalPlants)
	if err != nil {
		return SourceProfile{}, err
	}
	if !plants.value.IsInteger() {
		return SourceProfile{}, formatErrorf(n, ColTotalPlants, "not an integer %s", plants)
	}
	if plants.value.GreaterThan(newDecimal(math.MaxInt32)) {
		return SourceProfile{}, formatErrorf(n, ColTotalPlants, "too many plants %s", plants)
	}
	s.MaxPlants = int(plants.value.IntPart())

	return NewSourceProfile(s), nil
}

// Currency returns the currency of every money value in the catalog.
func (c *Catalog) Currency() string { return c.currency }

// Len returns the number of sources.
func (c *Catalog) Len() int { return len(c.profiles) }

// Has reports whether the catalog defines 'name'.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Profile returns the profile of the source 'name'.
func (c *Catalog) Profile(name string) (SourceProfile, error) {
	i, ok := c.index[name]
	if !ok {
		return SourceProfile{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return c.profiles[i], nil
}

// Names returns the source names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.name
	}
	return names
}

// Profiles iterates over the profiles in catalog order.
func (c *Catalog) Profiles() iter.Seq[SourceProfile] {
	return func(yield func(SourceProfile) bool) {
		for _, p := range c.profiles {
			if !yield(p) {
				return
			}
		}
	}
}

// MinBudget is the cost of the cheapest single plant.
func (c *Catalog) MinBudget() Money { return c.minBudget }

// MaxBudget is the cost of building every plant of every source.
func (c *Catalog) MaxBudget() Money { return c.maxBudget }

// CheckBudget returns an error if b is outside [MinBudget, MaxBudget].
func (c *Catalog) CheckBudget(b Money) error {
	if b.cur != "" && b.cur != c.currency {
		return fmt.Errorf("%w: budget in %s, catalog is in %s", ErrBudgetOutOfRange, b.cur, c.currency)
	}
	if b.LessThan(c.minBudget) || b.GreaterThan(c.maxBudget) {
		return fmt.Errorf("%w: %s is not within [%s, %s]", ErrBudgetOutOfRange, b, c.minBudget, c.maxBudget)
	}
	return nil
}

// ParseMoney parses an amount in the catalog's currency, see ParseMoney.
func (c *Catalog) ParseMoney(s string) (Money, error) { return ParseMoney(s, c.currency) }
