package agent

import (
	"github.com/etnz/powermix"
	"github.com/etnz/powermix/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is building a portfolio of power plants under a fixed budget. They want to
			understand the trade-offs between energy, cost, CO2, toxic waste and score, and they
			might ask you to change the simulation for them.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Never invent figures: the Planner computes them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates an expert of the energy market, grounded with Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an energy market analyst,
		aware of the technologies behind each energy source, their typical costs, lifetimes and
		environmental impact, and of the recent news of the sector.
		Ask the Analyst whenever you need context that the simulation does not hold.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of energy markets and power generation technologies. You Leverage
			Google Search to ground your assertions in a solid truth.
			You relate what you find to the user's request, and you say so when the figures
			of a simulation differ from the real world ones.
				`}}},
		},
	}
}

// NewPlanner creates the expert in charge of the simulation 'sim'.
func NewPlanner(sim *powermix.Simulation) *Expert {
	lib := SimulationFunctions(sim)

	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. They are in charge of the user's simulation: the catalog of
		energy sources, the budget and the rows of plants to build.
		They can read and edit the simulation, and compute its results.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the planner in charge of the user's power plant simulation.
				You know how to use the Tools to read the catalog of energy sources, to edit the
				budget and the rows, and to calculate the results.
				Rows are numbered from 1. Every edit returns the new state of the simulation,
				report the warnings it contains.

				Here is how the budget is consumed by the rows:

				` + must(docs.GetTopic("budget")) + `

				` + must(docs.GetTopic("policy")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
