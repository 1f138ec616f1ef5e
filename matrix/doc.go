// Package matrix provides the dense row-major storage used by the presslin
// solvers.
//
// The matrix package provides:
//
//   - Dense, a bounds-safe row-major float64 matrix holding finite values
//     only (NaN/±Inf rejected on Set and ingestion).
//   - Row-level primitives (RowView, SwapRows) used by elimination kernels
//     that must work on contiguous row storage.
//   - MatVec for substituting a solution back into a coefficient matrix, and
//     AllClose for tolerance-based comparison of two matrices.
//   - Central validators returning plain sentinels (errors.go).
//
// Matrices here are small (tens of rows and columns); the package favors
// determinism and explicit errors over raw throughput.
package matrix
