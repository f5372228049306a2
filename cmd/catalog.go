package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/powermix/renderer"
	"github.com/google/subcommands"
)

type catalogCmd struct {
	json bool
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the energy sources and the budget range" }
func (*catalogCmd) Usage() string {
	return `pmx catalog [-json]

  Lists the energy sources of the catalog, what a plant of each costs and the
  budget range they allow.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the sources as JSON")
}

func (c *catalogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		var sources []any
		for p := range catalog.Profiles() {
			sources = append(sources, p)
		}
		if err := json.NewEncoder(os.Stdout).Encode(sources); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.CatalogMarkdown(catalog))
	return subcommands.ExitSuccess
}
