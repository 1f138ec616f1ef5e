// SPDX-License-Identifier: MIT

package matrix

// Matrix is a mutable two-dimensional float64 array with checked access.
// *Dense is the implementation used throughout the module.
type Matrix interface {
	Rows() int
	Cols() int

	// At and Set return ErrOutOfRange for indices outside the matrix.
	At(i, j int) (float64, error)
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
