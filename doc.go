// Package powermix simulates a budget-constrained portfolio of power plants
// across several energy sources, and reports the energy, cost, waste,
// emissions and sustainability score of the result.
//
// The core functionalities include:
//   - Catalog: the reference data of every energy source, loaded from CSV,
//     JSON or YAML tables, with the derived cost of a plant and the budget
//     range it implies.
//   - Affordability: which sources a row can still select, and how many
//     plants the remaining budget allows.
//   - Allocation: a left to right pass over the portfolio rows, each one
//     consuming budget from what the rows above left.
//   - Aggregation: energy, cost, toxic waste, CO2 and plant-weighted score of
//     a portfolio.
//   - Simulation: an editing session combining the above, with the policies
//     deciding how over-allocated rows and unaffordable selections behave.
//
// Money and quantities are exact decimals, so totals do not depend on the
// order rows are summed in.
//
// This package serves as the foundational logic for the `pmx` command-line
// tool and its HTTP server.
package powermix
