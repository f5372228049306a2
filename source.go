package powermix

// SourceProfile holds the reference data of one energy source: how much a
// plant produces, what a TWh costs, and its environmental impact.
//
// Profiles are immutable, create them with NewSourceProfile or load them in
// a Catalog.
type SourceProfile struct {
	name             string
	energyPerPlant   Quantity // TWh
	baseCostPerTWh   Money
	wasteCostPerTWh  Money
	toxicWastePerTWh Quantity // tons
	co2PerTWh        Quantity // tons
	score            Quantity
	maxPlants        int
}

// SourceSpec lists the raw figures of a source, as found in a catalog row.
type SourceSpec struct {
	Name             string
	EnergyPerPlant   Quantity
	BaseCostPerTWh   Money
	WasteCostPerTWh  Money
	ToxicWastePerTWh Quantity
	CO2PerTWh        Quantity
	Score            Quantity
	MaxPlants        int
}

// NewSourceProfile creates a profile from its raw figures. It does not
// validate them, LoadCatalog does.
func NewSourceProfile(s SourceSpec) SourceProfile {
	return SourceProfile{
		name:             s.Name,
		energyPerPlant:   s.EnergyPerPlant,
		baseCostPerTWh:   s.BaseCostPerTWh,
		wasteCostPerTWh:  s.WasteCostPerTWh,
		toxicWastePerTWh: s.ToxicWastePerTWh,
		co2PerTWh:        s.CO2PerTWh,
		score:            s.Score,
		maxPlants:        s.MaxPlants,
	}
}

func (p SourceProfile) Name() string               { return p.name }
func (p SourceProfile) EnergyPerPlant() Quantity   { return p.energyPerPlant }
func (p SourceProfile) BaseCostPerTWh() Money      { return p.baseCostPerTWh }
func (p SourceProfile) WasteCostPerTWh() Money     { return p.wasteCostPerTWh }
func (p SourceProfile) ToxicWastePerTWh() Quantity { return p.toxicWastePerTWh }
func (p SourceProfile) CO2PerTWh() Quantity        { return p.co2PerTWh }
func (p SourceProfile) Score() Quantity            { return p.score }
func (p SourceProfile) MaxPlants() int             { return p.maxPlants }

// CostPerTWh is the full cost of a TWh, waste handling included.
func (p SourceProfile) CostPerTWh() Money { return p.baseCostPerTWh.Add(p.wasteCostPerTWh) }

// CostPerPlant is what building one plant of this source costs.
func (p SourceProfile) CostPerPlant() Money { return p.CostPerTWh().Mul(p.energyPerPlant) }

// MaxSourceCost is the cost of building every plant this source allows.
func (p SourceProfile) MaxSourceCost() Money { return p.CostPerPlant().Times(p.maxPlants) }

// Energy returns the output of n plants, in TWh.
func (p SourceProfile) Energy(n int) Quantity { return p.energyPerPlant.Mul(Q(n)) }

func (p SourceProfile) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", p.name)
	w.Append("energyPerPlant", p.energyPerPlant)
	w.Append("costPerTWh", p.CostPerTWh())
	w.Append("wasteCostPerTWh", p.wasteCostPerTWh)
	w.Append("costPerPlant", p.CostPerPlant())
	w.Append("toxicWastePerTWh", p.toxicWastePerTWh)
	w.Append("co2PerTWh", p.co2PerTWh)
	w.Append("score", p.score)
	w.Append("maxPlants", p.maxPlants)
	return w.MarshalJSON()
}
