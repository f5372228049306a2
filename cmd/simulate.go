package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/powermix"
	"github.com/etnz/powermix/renderer"
	"github.com/google/subcommands"
)

type simulateCmd struct {
	scenario string
	budget   string
	json     bool
	pdf      string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run a scenario and show its allocation and results" }
func (*simulateCmd) Usage() string {
	return `pmx simulate [-s <scenario>] [-b <budget>] [-json] [-pdf <file>]

  Runs a scenario and shows every row with its cost and the remaining budget,
  then the results of the portfolio.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "s", "", "Scenario file (YAML or JSON)")
	f.StringVar(&c.budget, "b", "", "Budget, overrides the scenario's. Accepts k, M and B suffixes")
	f.BoolVar(&c.json, "json", false, "Print the allocation and the results as JSON")
	f.StringVar(&c.pdf, "pdf", "", "Write the report to this PDF file")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	sim, err := openSimulation(catalog, c.scenario, c.budget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.pdf != "" {
		if err := writePDF(c.pdf, sim); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.pdf, err)
			return subcommands.ExitFailure
		}
		if *Verbose {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", c.pdf)
		}
	}

	if c.json {
		if err := encodeSimulation(os.Stdout, sim); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if c.pdf != "" {
		return subcommands.ExitSuccess
	}

	md, err := renderer.SimulationMarkdown(sim, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// encodeSimulation writes the allocation and the results of 'sim' as a single
// JSON line.
func encodeSimulation(w io.Writer, sim *powermix.Simulation) error {
	a, sum, err := sim.Recompute()
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(struct {
		Policy     string               `json:"policy"`
		Allocation *powermix.Allocation `json:"allocation"`
		Summary    powermix.Summary     `json:"summary"`
	}{sim.Policy().String(), a, sum})
}

func writePDF(path string, sim *powermix.Simulation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderer.WritePDF(f, sim, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
