// SPDX-License-Identifier: MIT

// Package matrix - row-major coefficient storage.
//
// Dense keeps a flat buffer addressed as i*cols + j. Element accessors check
// bounds and finiteness and return wrapped sentinels; row-level accessors
// (RowView, SwapRows) hand out the underlying storage so elimination loops
// can run without per-element checks.
//
// Complexity:
//   - At/Set/RowView O(1), SwapRows O(cols), Clone/Induced O(size).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Dense is a row-major float64 matrix with finite entries.
type Dense struct {
	rows, cols int
	data       []float64 // len == rows*cols
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// denseErr tags err with the failing method and its arguments.
func denseErr(method string, a, b int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, a, b, err)
}

// NewDense allocates a zero rows×cols matrix.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, denseErr("New", rows, cols, ErrInvalidDimensions)
	}

	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a rectangular slice of rows. The input is not retained.
//
// Errors:
//   - ErrInvalidDimensions for empty or ragged input.
//   - ErrNaNInf for a non-finite entry.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, denseErr("From", 0, 0, ErrInvalidDimensions)
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	var (
		i   int
		row []float64
	)
	for i, row = range rows {
		if len(row) != m.cols {
			return nil, denseErr("From", i, len(row), ErrInvalidDimensions)
		}
		if err = ValidateFinite(row); err != nil {
			return nil, fmt.Errorf("Dense.From row %d: %w", i, err)
		}
		copy(m.data[i*m.cols:(i+1)*m.cols], row)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// Shape returns (Rows, Cols).
func (m *Dense) Shape() (rows, cols int) { return m.rows, m.cols }

func (m *Dense) inBounds(i, j int) bool {
	return i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

// At returns entry (i, j); ErrOutOfRange for bad indices.
func (m *Dense) At(i, j int) (float64, error) {
	if !m.inBounds(i, j) {
		return 0, denseErr("At", i, j, ErrOutOfRange)
	}

	return m.data[i*m.cols+j], nil
}

// Set writes entry (i, j); ErrOutOfRange for bad indices, ErrNaNInf for a
// non-finite value.
func (m *Dense) Set(i, j int, v float64) error {
	if !m.inBounds(i, j) {
		return denseErr("Set", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErr("Set", i, j, ErrNaNInf)
	}
	m.data[i*m.cols+j] = v

	return nil
}

// RowView returns row i as a slice sharing the matrix storage (len == cap ==
// Cols). Writes through it bypass the finiteness check. A view tracks storage,
// so after SwapRows(i, k) the view of i shows what is now row i.
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.rows {
		return nil, denseErr("RowView", i, 0, ErrOutOfRange)
	}
	lo, hi := i*m.cols, (i+1)*m.cols

	return m.data[lo:hi:hi], nil
}

// SwapRows exchanges rows i and k in place.
func (m *Dense) SwapRows(i, k int) error {
	if i < 0 || i >= m.rows || k < 0 || k >= m.rows {
		return denseErr("SwapRows", i, k, ErrOutOfRange)
	}
	if i == k {
		return nil
	}
	ri, _ := m.RowView(i)
	rk, _ := m.RowView(k)
	for j := range ri {
		ri[j], rk[j] = rk[j], ri[j]
	}

	return nil
}

// Clone implements Matrix.
func (m *Dense) Clone() Matrix { return m.CloneDense() }

// CloneDense returns an independent copy.
func (m *Dense) CloneDense() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{rows: m.rows, cols: m.cols, data: data}
}

// String renders one bracketed line per row, "%g" per entry:
//
//	[1, 0]
//	[0, 1]
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// Induced copies the submatrix at rowIdx × colIdx, in the given order.
// Duplicated indices are allowed.
//
// Errors:
//   - ErrInvalidDimensions for an empty index list.
//   - ErrOutOfRange for an index outside the matrix.
func (m *Dense) Induced(rowIdx, colIdx []int) (*Dense, error) {
	if len(rowIdx) == 0 || len(colIdx) == 0 {
		return nil, denseErr("Induced", len(rowIdx), len(colIdx), ErrInvalidDimensions)
	}
	for _, r := range rowIdx {
		if r < 0 || r >= m.rows {
			return nil, denseErr("Induced", r, -1, ErrOutOfRange)
		}
	}
	for _, c := range colIdx {
		if c < 0 || c >= m.cols {
			return nil, denseErr("Induced", -1, c, ErrOutOfRange)
		}
	}
	out, _ := NewDense(len(rowIdx), len(colIdx)) // both lengths > 0
	var i, j int
	for i = range rowIdx {
		for j = range colIdx {
			out.data[i*out.cols+j] = m.data[rowIdx[i]*m.cols+colIdx[j]]
		}
	}

	return out, nil
}
