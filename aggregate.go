package powermix

import "fmt"

// Summary holds the aggregate metrics of a portfolio.
type Summary struct {
	Energy        Quantity // TWh
	Cost          Money
	ToxicWaste    Quantity // tons
	CO2           Quantity // tons
	WeightedScore Quantity
	Plants        int
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("energy", s.Energy)
	w.Append("cost", s.Cost)
	w.Append("toxicWaste", s.ToxicWaste)
	w.Append("co2", s.CO2)
	w.Append("weightedScore", s.WeightedScore)
	w.Append("plants", s.Plants)
	return w.MarshalJSON()
}

// Aggregate folds every entry of p into a Summary.
//
// The weighted score is the plant-weighted average of source scores, zero
// for a portfolio without plant. Budgets play no role here: rows are
// aggregated as entered, over-allocated or not.
func Aggregate(c *Catalog, p *Portfolio) (Summary, error) {
	s := Summary{Cost: M(0, c.currency)}
	var scores Quantity
	for i, e := range p.Entries() {
		profile, err := c.Profile(e.Source)
		if err != nil {
			return Summary{}, fmt.Errorf("row %d: %w", i, err)
		}
		energy := profile.Energy(e.Plants)
		s.Energy = s.Energy.Add(energy)
		s.Cost = s.Cost.Add(profile.CostPerTWh().Mul(energy))
		s.ToxicWaste = s.ToxicWaste.Add(energy.Mul(profile.toxicWastePerTWh))
		s.CO2 = s.CO2.Add(energy.Mul(profile.co2PerTWh))
		scores = scores.Add(profile.score.Mul(Q(e.Plants)))
		s.Plants += e.Plants
	}
	if s.Plants > 0 {
		s.WeightedScore = scores.Div(Q(s.Plants))
	}
	return s, nil
}
