// SPDX-License-Identifier: MIT

// Package gaussjordan - reduced row-echelon form with explicit free columns.
//
// Reduce walks diagonal positions d = 0..C−1 left to right. The candidate
// pivot row for d is p = d − (free columns found so far), so a column that
// has no usable pivot does not consume a row:
//
//  1. p ≥ R            → column d is free.
//  2. |A[p][d]| small  → swap in the row strictly below p with the largest
//     |A[r][d]| (and its target entry).
//  3. classify m = |A[p][d]|:
//     m ≤ Epsilon            → column d is free;
//     Epsilon < m < Floor    → ErrNumericInstability;
//     otherwise              → pivot.
//  4. normalize row p from column d onward (and b[p]) so A[p][d] == 1, then
//     eliminate column d from every other row, above and below, from column d
//     onward. Entries that land within Epsilon of zero are flushed to 0.
//
// Rows rank..R−1 end up all-zero; a non-zero target there means the system
// is inconsistent (ErrInconsistent).
//
// Columns left of d never need updating: every earlier column is either a
// pivot column (already 0 outside its pivot row) or a free column whose
// entries are 0 in every row at or below the current pivot row.
//
// Complexity:
//   - Time O(R·C·min(R,C)), Space O(R·C) for the working copy.
//
// Determinism:
//   - Fixed loop orders, first-maximum tiebreak in row selection; reducing
//     the same System twice yields bit-identical results.

package gaussjordan

import (
	"fmt"
	"math"

	"github.com/katalvlaran/presslin/matrix"
)

// reducer holds the working copy and policy for one Reduce call.
type reducer struct {
	a          *matrix.Dense
	b          []float64
	rows, cols int
	eps, floor float64

	pivots []int
	free   []int
}

// Reduce brings sys to reduced row-echelon form. sys is not modified.
//
// Errors:
//   - ErrEmptySystem for a nil system.
//   - ErrNumericInstability for grey-zone pivots or residuals.
//   - ErrInconsistent when a zero row keeps a non-zero target.
func Reduce(sys *System, opts ...Option) (*ReducedForm, error) {
	if sys == nil || sys.a == nil {
		return nil, ErrEmptySystem
	}
	o := gatherOptions(opts...)

	e := reducer{
		a:     sys.a.CloneDense(),
		b:     sys.Target(),
		eps:   o.eps,
		floor: o.floor,
	}
	e.rows, e.cols = e.a.Shape()
	e.pivots = make([]int, 0, min(e.rows, e.cols))
	e.free = make([]int, 0, e.cols)

	var (
		d, p  int
		pivot bool
		err   error
	)
	for d = 0; d < e.cols; d++ {
		p = d - len(e.free)
		if p >= e.rows {
			e.free = append(e.free, d) // no row left to pivot on
			continue
		}
		if pivot, err = e.selectPivot(p, d); err != nil {
			return nil, err
		}
		if !pivot {
			e.clearBelow(p, d)
			e.free = append(e.free, d)
			continue
		}
		e.normalize(p, d)
		e.eliminate(p, d)
		e.pivots = append(e.pivots, d)
	}

	if err = e.checkResiduals(); err != nil {
		return nil, err
	}

	return &ReducedForm{sys: sys, a: e.a, b: e.b, pivots: e.pivots, free: e.free}, nil
}

// row returns the storage of row i; i is always in range here.
func (e *reducer) row(i int) []float64 {
	r, _ := e.a.RowView(i)
	return r
}

// selectPivot brings the best available pivot for column d into row p and
// classifies it. Returns (true, nil) for a usable pivot, (false, nil) for a
// free column.
func (e *reducer) selectPivot(p, d int) (bool, error) {
	best, bestMag := p, math.Abs(e.row(p)[d])
	if bestMag < e.floor {
		var r int
		var mag float64
		for r = p + 1; r < e.rows; r++ {
			mag = math.Abs(e.row(r)[d])
			if mag > bestMag {
				best, bestMag = r, mag
			}
		}
		if best != p {
			_ = e.a.SwapRows(p, best) // both indices in range
			e.b[p], e.b[best] = e.b[best], e.b[p]
		}
	}

	switch {
	case bestMag <= e.eps:
		return false, nil
	case bestMag < e.floor:
		return false, fmt.Errorf("column %d row %d |pivot|=%g: %w", d, p, bestMag, ErrNumericInstability)
	default:
		return true, nil
	}
}

// clearBelow flushes the sub-epsilon leftovers of a free column d in rows p..R−1.
func (e *reducer) clearBelow(p, d int) {
	var r int
	for r = p; r < e.rows; r++ {
		e.row(r)[d] = 0
	}
}

// normalize scales row p (from column d onward) and b[p] so A[p][d] == 1.
func (e *reducer) normalize(p, d int) {
	rp := e.row(p)
	pv := rp[d]
	var j int
	for j = d + 1; j < e.cols; j++ {
		rp[j] = e.flush(rp[j] / pv)
	}
	rp[d] = 1
	e.b[p] = e.flush(e.b[p] / pv)
}

// eliminate clears column d in every row other than p.
func (e *reducer) eliminate(p, d int) {
	rp := e.row(p)
	var (
		r, j int
		f    float64
		rr   []float64
	)
	for r = 0; r < e.rows; r++ {
		if r == p {
			continue
		}
		rr = e.row(r)
		f = rr[d]
		if f == 0 {
			continue
		}
		for j = d + 1; j < e.cols; j++ {
			if rp[j] != 0 {
				rr[j] = e.flush(rr[j] - f*rp[j])
			}
		}
		rr[d] = 0
		e.b[r] = e.flush(e.b[r] - f*e.b[p])
	}
}

// checkResiduals validates the targets of the zero rows below the rank.
func (e *reducer) checkResiduals() error {
	var (
		r   int
		mag float64
	)
	for r = len(e.pivots); r < e.rows; r++ {
		mag = math.Abs(e.b[r])
		switch {
		case mag <= e.eps:
			e.b[r] = 0
		case mag < e.floor:
			return fmt.Errorf("row %d |residual|=%g: %w", r, mag, ErrNumericInstability)
		default:
			return fmt.Errorf("row %d residual=%g: %w", r, e.b[r], ErrInconsistent)
		}
	}

	return nil
}

// flush maps magnitudes at or below eps to exact zero.
func (e *reducer) flush(v float64) float64 {
	if math.Abs(v) <= e.eps {
		return 0
	}

	return v
}
