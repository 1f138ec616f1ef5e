// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinels. Call sites wrap them with the failing operation; match with errors.Is.
var (
	// ErrInvalidDimensions: non-positive dimensions, empty index lists, or ragged rows.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange: a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch: operands of incompatible shape.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf: a non-finite value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix: a nil matrix or vector argument.
	ErrNilMatrix = errors.New("matrix: nil argument")
)
