package powermix

import (
	"testing"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// testCatalog returns the two sources catalog:
//
//	Solar: 3 plants at 50 each (1 TWh at 40+10 per TWh)
//	Coal:  2 plants at 100 each (2 TWh at 45+5 per TWh)
//
// hence a budget range of [50, 350].
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("USD",
		NewSourceProfile(SourceSpec{
			Name:             "Solar",
			EnergyPerPlant:   Q(1),
			BaseCostPerTWh:   USD(40),
			WasteCostPerTWh:  USD(10),
			ToxicWastePerTWh: Q(2),
			CO2PerTWh:        Q(40),
			Score:            Q(9),
			MaxPlants:        3,
		}),
		NewSourceProfile(SourceSpec{
			Name:             "Coal",
			EnergyPerPlant:   Q(2),
			BaseCostPerTWh:   USD(45),
			WasteCostPerTWh:  USD(5),
			ToxicWastePerTWh: Q(100),
			CO2PerTWh:        Q(800),
			Score:            Q(2),
			MaxPlants:        2,
		}),
	)
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return c
}

// energyCatalog loads the reference catalog in testdata.
func energyCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenCatalog("testdata/energy_data.csv", "", "USD")
	if err != nil {
		t.Fatalf("OpenCatalog() failed: %v", err)
	}
	return c
}
