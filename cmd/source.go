package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/powermix/renderer"
	"github.com/google/subcommands"
)

type sourceCmd struct{}

func (*sourceCmd) Name() string     { return "source" }
func (*sourceCmd) Synopsis() string { return "show the details of an energy source" }
func (*sourceCmd) Usage() string {
	return `pmx source <name>...

  Shows the energy per plant, cost, emissions, waste, score and plant limit of
  each named source.
`
}

func (c *sourceCmd) SetFlags(f *flag.FlagSet) {}

func (c *sourceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a source name is required")
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, name := range f.Args() {
		p, err := catalog.Profile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.SourceMarkdown(p))
	}
	return subcommands.ExitSuccess
}
