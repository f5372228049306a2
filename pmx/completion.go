package main

import (
	"github.com/etnz/powermix/cmd"
	"github.com/etnz/powermix/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the pmx command line for shell completion. Install it
// with COMP_INSTALL=1 pmx.
func completion() *complete.Command {
	// the catalog is only read when a source name is completed.
	sources := complete.PredictFunc(func(string) []string { return cmd.SourceNames() })
	scenario := predict.Files("*.y*ml")
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"catalog":  predict.Files("*"),
			"select":   predict.Nothing,
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"catalog": {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"source":  {Args: sources},
			"simulate": {Flags: map[string]complete.Predictor{
				"s":    scenario,
				"b":    predict.Nothing,
				"json": predict.Nothing,
				"pdf":  predict.Files("*.pdf"),
			}},
			"fmt":    {Flags: map[string]complete.Predictor{"o": scenario}, Args: scenario},
			"play":   {Flags: map[string]complete.Predictor{"s": scenario}},
			"assist": {Flags: map[string]complete.Predictor{"s": scenario}},
			"serve":  {Flags: map[string]complete.Predictor{"addr": predict.Nothing}},
			"topic":  {Args: predict.Set(topics)},
		},
	}
}
