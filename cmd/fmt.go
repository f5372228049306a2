package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/powermix"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats scenario files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pmx fmt [-o <file>] <scenario>...

  Validates scenario files against the catalog and writes them back in a
  canonical form: explicit policies, the budget as a plain amount, and the rows
  as the policy settles them.
  Scenarios are formatted in-place, use -o to write a single scenario elsewhere.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Output file, only with a single scenario")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a scenario file is required")
		return subcommands.ExitUsageError
	}
	if c.outputFile != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o requires a single scenario")
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, file := range f.Args() {
		out := file
		if c.outputFile != "" {
			out = c.outputFile
		}
		if err := formatScenario(catalog, file, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting scenario %q: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}
		if *Verbose {
			fmt.Fprintf(os.Stderr, "Formatted %s\n", out)
		}
	}
	return status
}

// formatScenario replays the scenario in 'in' and writes its canonical form
// to 'out'. Nothing is written if the scenario is invalid.
func formatScenario(c *powermix.Catalog, in, out string) error {
	sim, err := openSimulation(c, in, "")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := powermix.NewScenario(sim).Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}
