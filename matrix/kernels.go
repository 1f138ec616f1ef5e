// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// MatVec returns y = m·x, len(x) == m.Cols().
//
// *Dense is read directly from its buffer; other implementations go through At.
// Both paths accumulate each row left to right.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("MatVec: %w", err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, fmt.Errorf("MatVec: %w", err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var (
		i, j int
		v    float64
		err  error
	)
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			row := d.data[i*cols : (i+1)*cols]
			for j = range row {
				if x[j] != 0 {
					y[i] += row[j] * x[j]
				}
			}
		}

		return y, nil
	}
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("MatVec: %w", err)
			}
			y[i] += v * x[j]
		}
	}

	return y, nil
}

// AllClose reports whether |a_ij − b_ij| ≤ atol + rtol·|b_ij| for every entry.
// Negative tolerances are taken by absolute value.
//
// Errors:
//   - ErrNaNInf for a non-finite tolerance.
//   - ErrNilMatrix, ErrDimensionMismatch for bad operands.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateFinite([]float64{rtol, atol}); err != nil {
		return false, fmt.Errorf("AllClose tolerance: %w", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for _, m := range []Matrix{a, b} {
		if err := ValidateNotNil(m); err != nil {
			return false, fmt.Errorf("AllClose: %w", err)
		}
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}

	var (
		i, j   int
		av, bv float64
		err    error
	)
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, fmt.Errorf("AllClose: %w", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, fmt.Errorf("AllClose: %w", err)
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
