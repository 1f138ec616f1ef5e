// Package minsearch finds the minimal-total non-negative integer solution of
// a linear system whose solution space has been parametrized by
// gaussjordan.Reduce.
//
// The free multipliers are enumerated exhaustively within an inclusive bound
// (see odometer), so the result is exact for that bound: every tuple is either
// evaluated or pruned by a rule that cannot discard a better candidate.
//
// Example:
//
//	sys, _ := gaussjordan.NewSystem([][]float64{{1, 1, 1}}, []float64{5})
//	res, err := minsearch.Solve(ctx, sys, minsearch.DefaultOptions())
//	// res.Total == 5, res.Solution == [5 0 0]
package minsearch
