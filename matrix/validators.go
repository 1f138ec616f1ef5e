// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// ValidateNotNil rejects a nil Matrix, including a typed nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return fmt.Errorf("not nil: %w", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return fmt.Errorf("not nil: %w", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape requires equal Rows and Cols; both operands must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("shape %dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen requires a non-nil x of length n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return fmt.Errorf("nil vector: %w", ErrNilMatrix)
	}
	if len(x) != n {
		return fmt.Errorf("vector len %d, want %d: %w", len(x), n, ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf entries.
func ValidateFinite(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("entry %d = %g: %w", i, v, ErrNaNInf)
		}
	}

	return nil
}
