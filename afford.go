package powermix

import "sort"

// AffordableSources lists, in lexicographic order, every source whose plant
// fits in the remaining budget.
//
// With KeepSelection and as long as some budget remains, 'current' is listed
// too even when it is no longer affordable. Pass an empty 'current' for a row
// without selection. The result is never nil.
func AffordableSources(c *Catalog, remaining Money, current string, policy SelectionPolicy) []string {
	names := make([]string, 0, c.Len())
	hasCurrent := false
	for p := range c.Profiles() {
		if p.CostPerPlant().LessThanOrEqual(remaining) {
			names = append(names, p.name)
			hasCurrent = hasCurrent || p.name == current
		}
	}
	if policy == KeepSelection && !hasCurrent && current != "" && remaining.IsPositive() && c.Has(current) {
		names = append(names, current)
	}
	sort.Strings(names)
	return names
}

// AllowedMax returns how many plants of 'p' can be built with the remaining
// budget, capped by the number of plants the source allows. It is never
// negative. Free plants are only capped by the source.
func AllowedMax(p SourceProfile, remaining Money) int {
	cpp := p.CostPerPlant()
	if !cpp.IsPositive() {
		return p.maxPlants
	}
	if !remaining.IsPositive() {
		return 0
	}
	n := remaining.Fit(cpp)
	if n > int64(p.maxPlants) {
		return p.maxPlants
	}
	return int(n)
}
