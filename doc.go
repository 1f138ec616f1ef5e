// Package presslin computes the fewest button presses that configure a row of
// factory machines.
//
// Every machine has indicator lights, counters, and buttons wired to a subset
// of both. Two questions are answered per machine and summed over the input:
//
//   - Part 1: which buttons, each pressed at most once, toggle the lights
//     into the diagram with the fewest presses.
//   - Part 2: how many times to press each button so every counter reaches
//     its target exactly, with the fewest presses in total.
//
// Part 2 is a linear system A·x = b with non-negative integer unknowns. The
// pipeline reduces it to row-echelon form, exposes the free variables, and
// searches their values exhaustively within a bound:
//
//	machine/      parse input lines; build the counter system; toggle search
//	matrix/       row-major coefficient storage and substitution (MatVec)
//	vector/       vector arithmetic and the non-negative/integral predicates
//	gaussjordan/  reduced row-echelon form with pivot and free columns
//	odometer/     index-addressable enumeration of bounded integer tuples
//	minsearch/    minimal-total search over the free multipliers
//	batch/        concurrent solving of many machines with classified failures
//	config/       viper-backed configuration (file, PRESSLIN_* env, flags)
//	cmd/presslin/ the cobra CLI: `presslin solve [input] --part 1|2`
//
// Quick start:
//
//	sys, _ := gaussjordan.NewSystem([][]float64{{1, 1}, {0, 1}}, []float64{3, 2})
//	res, err := minsearch.Solve(ctx, sys, minsearch.DefaultOptions())
//	// res.Total == 3, res.Solution == [1 2]
package presslin
