package powermix

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the document form of a simulation:
//
//	budget: 120M
//	policy:
//	  allocation: clamp
//	  selection: keep
//	rows:
//	  - source: Solar
//	    plants: 2
//
// JSON documents are accepted too. A missing budget means the smallest budget
// of the catalog.
type Scenario struct {
	Budget string         `yaml:"budget,omitempty"`
	Policy ScenarioPolicy `yaml:"policy,omitempty"`
	Rows   []Entry        `yaml:"rows"`
}

// ScenarioPolicy holds the policy names of a scenario, see ParseAllocationPolicy
// and ParseSelectionPolicy.
type ScenarioPolicy struct {
	Allocation string `yaml:"allocation,omitempty"`
	Selection  string `yaml:"selection,omitempty"`
}

// DecodeScenario reads a YAML or JSON scenario. An empty document is an empty
// scenario.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	sc := new(Scenario)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("not a correct scenario: %w", err)
	}
	return sc, nil
}

// OpenScenario reads the scenario file at 'path'.
func OpenScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open scenario file %q: %w", path, err)
	}
	defer f.Close()
	sc, err := DecodeScenario(f)
	if err != nil {
		return nil, fmt.Errorf("could not read scenario file %q: %w", path, err)
	}
	return sc, nil
}

// Encode writes the scenario as YAML.
func (sc *Scenario) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}

// NewScenario captures the current state of a simulation.
func NewScenario(s *Simulation) *Scenario {
	return &Scenario{
		Budget: s.budget.value.String(),
		Policy: ScenarioPolicy{
			Allocation: s.policy.Allocation.String(),
			Selection:  s.policy.Selection.String(),
		},
		Rows: s.Entries(),
	}
}

// Simulation replays the scenario on catalog 'c'. Rows are added in order, so
// a clamp policy lowers each row against the rows above it.
func (sc *Scenario) Simulation(c *Catalog) (*Simulation, error) {
	var policy Policy
	var err error
	if policy.Allocation, err = ParseAllocationPolicy(sc.Policy.Allocation); err != nil {
		return nil, err
	}
	if policy.Selection, err = ParseSelectionPolicy(sc.Policy.Selection); err != nil {
		return nil, err
	}

	s := NewSimulation(c, policy)
	if sc.Budget != "" {
		b, err := c.ParseMoney(sc.Budget)
		if err != nil {
			return nil, fmt.Errorf("invalid budget: %w", err)
		}
		if err := s.SetBudget(b); err != nil {
			return nil, err
		}
	}
	for i, e := range sc.Rows {
		if _, err := s.AddSource(e.Source); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := s.SetEntry(i, e.Source, e.Plants); err != nil {
			return nil, err
		}
	}
	return s, nil
}
