package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/powermix"
	"github.com/etnz/powermix/renderer"
	"github.com/google/subcommands"
)

type playCmd struct {
	scenario string
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "edit a simulation interactively" }
func (*playCmd) Usage() string {
	return `pmx play [-s <scenario>]

  Opens an interactive session on a simulation. Type 'help' for the commands.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "s", "", "Scenario file to start from")
}

func (c *playCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	sim, err := openSimulation(catalog, c.scenario, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitFailure
	}

	p := &player{sim: sim, w: os.Stdout, print: writeMarkdown}
	if err := p.run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const playPrompt = "pmx> "

const playHelp = `| Command | Effect |
|---|---|
| add [source] | append a row with no plant |
| set <row> <source> <plants> | change a row |
| rm <row> | remove a row |
| budget <amount> | change the budget, e.g. 1.2B |
| calc | show the results |
| info <source> | show the details of a source |
| show | show the rows and the budget status |
| sources | show the catalog |
| save <file> | write the session as a scenario |
| quit | leave the session |
`

var errQuit = errors.New("quit")

// player runs an interactive session over a simulation. Rows are numbered
// from 1.
type player struct {
	sim   *powermix.Simulation
	w     io.Writer
	print func(w io.Writer, md string)
	// calculated is set by 'calc' and cleared by the next change.
	calculated bool
}

// run reads commands from 'r' until 'quit' or the end of the input. Command
// errors are printed and the session goes on.
func (p *player) run(r io.Reader) error {
	fmt.Fprintln(p.w, "Welcome to pmx play. Type 'help' for the commands, 'quit' to exit.")
	if err := p.show(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(p.w, playPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(p.w)
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		err := p.exec(args[0], args[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(p.w, "Error: %v\n", err)
		}
	}
}

func (p *player) exec(name string, args []string) error {
	switch name {
	case "quit", "exit", "bye":
		return errQuit
	case "help":
		p.print(p.w, playHelp)
		return nil
	case "show":
		return p.show()
	case "calc":
		p.calculated = true
		return p.show()
	case "sources":
		p.print(p.w, renderer.CatalogMarkdown(p.sim.Catalog()))
		return nil
	case "info":
		if len(args) != 1 {
			return fmt.Errorf("usage: info <source>")
		}
		profile, err := p.sim.Catalog().Profile(args[0])
		if err != nil {
			return err
		}
		p.print(p.w, renderer.SourceMarkdown(profile))
		return nil
	case "save":
		if len(args) != 1 {
			return fmt.Errorf("usage: save <file>")
		}
		if err := p.save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(p.w, "Saved to %s\n", args[0])
		return nil
	}

	if err := p.edit(name, args); err != nil {
		return err
	}
	p.calculated = false
	return p.show()
}

// edit runs the commands that change the simulation.
func (p *player) edit(name string, args []string) error {
	switch name {
	case "add":
		switch len(args) {
		case 0:
			p.sim.Add()
			return nil
		case 1:
			_, err := p.sim.AddSource(args[0])
			return err
		}
		return fmt.Errorf("usage: add [source]")

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: set <row> <source> <plants>")
		}
		row, err := parseRow(args[0])
		if err != nil {
			return err
		}
		plants, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid plant count %q", args[2])
		}
		return p.sim.SetEntry(row, args[1], plants)

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm <row>")
		}
		row, err := parseRow(args[0])
		if err != nil {
			return err
		}
		return p.sim.RemoveAt(row)

	case "budget":
		if len(args) != 1 {
			return fmt.Errorf("usage: budget <amount>")
		}
		b, err := p.sim.Catalog().ParseMoney(args[0])
		if err != nil {
			return err
		}
		return p.sim.SetBudget(b)
	}
	return fmt.Errorf("unknown command %q, type 'help' for the list", name)
}

func (p *player) show() error {
	md, err := renderer.SimulationMarkdown(p.sim, p.calculated)
	if err != nil {
		return err
	}
	p.print(p.w, md)
	return nil
}

func (p *player) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := powermix.NewScenario(p.sim).Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseRow converts a 1-based row number into a row index.
func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid row %q", s)
	}
	return n - 1, nil
}
