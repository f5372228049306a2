package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/powermix"
	"github.com/etnz/powermix/renderer"
	"google.golang.org/genai"
)

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, args map[string]any) (string, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	out, err := f.Func(ctx, args)
	if err != nil {
		return failure(id, f.Decl.Name, err)
	}
	return success(id, f.Decl.Name, out)
}

var markdownResponse = &genai.Schema{
	Type:        genai.TypeString,
	Description: "A markdown document with the state of the simulation after the call.",
}

// rowSchema documents the 1-based row numbers used by the functions.
var rowSchema = &genai.Schema{
	Type:        genai.TypeInteger,
	Description: "The row number, starting at 1 for the first row.",
}

// SimulationFunctions returns the functions reading and editing 'sim'.
func SimulationFunctions(sim *powermix.Simulation) []Function {
	state := func() (string, error) {
		return renderer.SimulationMarkdown(sim, false)
	}

	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "catalog",
				Description: "Lists the energy sources that can be built, their cost, emissions, score and plant limits, and the allowed budget range.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the energy sources.",
				},
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.CatalogMarkdown(sim.Catalog()), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "source_info",
				Description: "Details one energy source of the catalog.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"source": {Type: genai.TypeString, Description: "The source name, e.g. Solar."},
					},
					Required: []string{"source"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "The source details in markdown."},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				name, err := stringArg(args, "source")
				if err != nil {
					return "", err
				}
				p, err := sim.Catalog().Profile(name)
				if err != nil {
					return "", err
				}
				return renderer.SourceMarkdown(p), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "show_allocation",
				Description: "Shows the rows of the simulation, what each one costs and the budget left after it.",
				Response:    markdownResponse,
			},
			Func: func(context.Context, map[string]any) (string, error) { return state() },
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "calculate",
				Description: "Computes the results of the simulation: total energy, cost, toxic waste, CO2 and the average score.",
				Response:    markdownResponse,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.SimulationMarkdown(sim, true)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "set_budget",
				Description: "Changes the total budget. Amounts accept the k, M and B suffixes, e.g. 1.5B.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"budget": {Type: genai.TypeString, Description: "The budget amount."},
					},
					Required: []string{"budget"},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				s, err := stringArg(args, "budget")
				if err != nil {
					return "", err
				}
				b, err := sim.Catalog().ParseMoney(s)
				if err != nil {
					return "", err
				}
				if err := sim.SetBudget(b); err != nil {
					return "", err
				}
				return state()
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "add_row",
				Description: "Appends a row with no plant. Without a source, the first source of the catalog is used.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"source": {Type: genai.TypeString, Description: "The source of the new row."},
					},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				if _, ok := args["source"]; !ok {
					sim.Add()
					return state()
				}
				name, err := stringArg(args, "source")
				if err != nil {
					return "", err
				}
				if _, err := sim.AddSource(name); err != nil {
					return "", err
				}
				return state()
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "set_row",
				Description: "Sets the source and the number of plants of a row.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"row":    rowSchema,
						"source": {Type: genai.TypeString, Description: "The source of the row."},
						"plants": {Type: genai.TypeInteger, Description: "The number of plants to build."},
					},
					Required: []string{"row", "source", "plants"},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				row, err := intArg(args, "row")
				if err != nil {
					return "", err
				}
				name, err := stringArg(args, "source")
				if err != nil {
					return "", err
				}
				plants, err := intArg(args, "plants")
				if err != nil {
					return "", err
				}
				if err := sim.SetEntry(row-1, name, plants); err != nil {
					return "", err
				}
				return state()
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "remove_row",
				Description: "Removes a row, the rows after it move up by one.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"row": rowSchema},
					Required:   []string{"row"},
				},
				Response: markdownResponse,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				row, err := intArg(args, "row")
				if err != nil {
					return "", err
				}
				if err := sim.RemoveAt(row - 1); err != nil {
					return "", err
				}
				return state()
			},
		},
	}
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("argument %q is missing", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return strings.TrimSpace(s), nil
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, name string) (int, error) {
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("argument %q is missing", name)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("argument %q must be a whole number, got %v", name, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}
