// Package gaussjordan reduces a linear equation system A·x = b to reduced
// row-echelon form and exposes its solution space explicitly.
//
// The result (ReducedForm) carries:
//
//   - the reduced matrix and target,
//   - the pivot column of every pivot row and the free columns, both in
//     increasing column order,
//   - the particular solution (all free variables at zero),
//   - one free-direction vector per free column, such that every solution is
//     Particular − Σ m_i·Directions[i] with x[Free[i]] = m_i.
//
// Systems may be wide (more variables than equations, which necessarily
// yields free columns), square, or tall. Zero tests use an explicit epsilon
// and a pivot floor (see Options); magnitudes between the two are reported as
// ErrNumericInstability rather than silently classified.
//
// Example:
//
//	sys, _ := gaussjordan.NewSystem([][]float64{{1, 1, 1}}, []float64{5})
//	rf, _ := gaussjordan.Reduce(sys)
//	rf.Free()       // [1 2]
//	rf.Particular() // [5 0 0]
package gaussjordan
