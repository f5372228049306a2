// Package cmd implements the pmx command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/powermix"
	"github.com/google/subcommands"
)

// Commands lists the pmx subcommands. A main package registers them on its
// commander.
var Commands = []subcommands.Command{
	&catalogCmd{},
	&sourceCmd{},
	&simulateCmd{},
	&fmtCmd{},
	&playCmd{},
	&serveCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	catalogFile   = flag.String("catalog", env(EnvCatalogFile, "energy_data.csv"), "Path to the catalog of energy sources (.csv, .json, .yaml)")
	catalogSelect = flag.String("select", env(EnvCatalogSelect, ""), "JSONPath selecting the sources in a JSON or YAML catalog")
	currency      = flag.String("currency", env(EnvCurrency, "USD"), "Currency of the catalog money columns")
	Verbose       = flag.Bool("v", envBool(EnvVerbose), "Print diagnostic messages")
)

// env returns the value of the environment variable 'name', or 'def' if it is
// empty.
func env(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// OpenCatalog reads the catalog designated by the global flags.
func OpenCatalog() (*powermix.Catalog, error) {
	return powermix.OpenCatalog(*catalogFile, *catalogSelect, *currency)
}

// openSimulation starts a simulation from the scenario file 'path', or an
// empty one when 'path' is empty. A non empty 'budget' overrides the scenario's.
func openSimulation(c *powermix.Catalog, path, budget string) (*powermix.Simulation, error) {
	sc := new(powermix.Scenario)
	if path != "" {
		var err error
		if sc, err = powermix.OpenScenario(path); err != nil {
			return nil, err
		}
	}
	if budget != "" {
		sc.Budget = budget
	}
	return sc.Simulation(c)
}

// writeMarkdown renders 'md' for the terminal. It falls back to the raw
// markdown when it cannot be rendered.
func writeMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}

func printMarkdown(md string) { writeMarkdown(os.Stdout, md) }

// SourceNames returns the sources of the default catalog, nil if it cannot be
// read. Flags are not parsed yet when the shell asks for completions.
func SourceNames() []string {
	c, err := OpenCatalog()
	if err != nil {
		return nil
	}
	return c.Names()
}
