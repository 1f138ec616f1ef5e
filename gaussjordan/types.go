// SPDX-License-Identifier: MIT

package gaussjordan

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/presslin/matrix"
	"github.com/katalvlaran/presslin/vector"
)

var (
	// ErrEmptySystem is returned for a nil System or one without rows/columns.
	ErrEmptySystem = errors.New("gaussjordan: empty system")

	// ErrDimensionMismatch indicates len(target) != rows of the coefficient matrix.
	ErrDimensionMismatch = errors.New("gaussjordan: target length does not match rows")

	// ErrNaNInf signals a non-finite coefficient or target value.
	ErrNaNInf = errors.New("gaussjordan: NaN or Inf in system")

	// ErrInconsistent is returned when reduction leaves a zero row with a
	// non-zero target: the equations contradict each other.
	ErrInconsistent = errors.New("gaussjordan: inconsistent equations")

	// ErrNumericInstability is returned when a pivot or residual magnitude
	// falls between Epsilon and PivotFloor, where it can be neither trusted as
	// non-zero nor safely treated as zero.
	ErrNumericInstability = errors.New("gaussjordan: numerically unstable pivot")
)

// System is an immutable equation system A·x = b.
// Rows are output channels, columns are activation variables.
type System struct {
	a *matrix.Dense
	b []float64
}

// NewSystem copies rows and target into a System.
//
// Errors:
//   - ErrEmptySystem for no rows or no columns.
//   - ErrDimensionMismatch when len(target) != len(rows).
//   - ErrNaNInf for non-finite values.
//   - matrix.ErrInvalidDimensions (wrapped) for ragged rows.
func NewSystem(rows [][]float64, target []float64) (*System, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptySystem
	}
	if len(target) != len(rows) {
		return nil, fmt.Errorf("rows=%d target=%d: %w", len(rows), len(target), ErrDimensionMismatch)
	}
	a, err := matrix.NewDenseFrom(rows)
	if err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("%w: %w", ErrNaNInf, err)
		}
		return nil, err
	}

	return NewSystemFromDense(a, target)
}

// NewSystemFromDense builds a System from an existing matrix; both inputs are copied.
func NewSystemFromDense(a *matrix.Dense, target []float64) (*System, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptySystem, err)
	}
	if len(target) != a.Rows() {
		return nil, fmt.Errorf("rows=%d target=%d: %w", a.Rows(), len(target), ErrDimensionMismatch)
	}
	if err := matrix.ValidateFinite(target); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNaNInf, err)
	}
	b := make([]float64, len(target))
	copy(b, target)

	return &System{a: a.CloneDense(), b: b}, nil
}

// Rows returns the number of equations.
func (s *System) Rows() int { return s.a.Rows() }

// Cols returns the number of variables.
func (s *System) Cols() int { return s.a.Cols() }

// Coefficients returns a copy of the coefficient matrix.
func (s *System) Coefficients() *matrix.Dense { return s.a.CloneDense() }

// Target returns a copy of the target vector.
func (s *System) Target() []float64 {
	out := make([]float64, len(s.b))
	copy(out, s.b)

	return out
}

// MaxTarget returns the largest target entry (0 when all entries are negative).
func (s *System) MaxTarget() float64 {
	m := 0.0
	for _, v := range s.b {
		m = math.Max(m, v)
	}

	return m
}

// Residual returns A·x − b for a candidate x (len == Cols).
func (s *System) Residual(x []float64) ([]float64, error) {
	y, err := matrix.MatVec(s.a, x)
	if err != nil {
		return nil, err
	}
	for i := range y {
		y[i] -= s.b[i]
	}

	return y, nil
}

// ReducedForm is the read-only result of Reduce.
// Pivot row r holds a 1 at column Pivots()[r] and 0 in every other pivot column.
type ReducedForm struct {
	sys    *System
	a      *matrix.Dense
	b      []float64
	pivots []int // pivot column per pivot row, increasing
	free   []int // free columns, increasing
}

// System returns the original (pre-reduction) system.
func (rf *ReducedForm) System() *System { return rf.sys }

// Matrix returns a copy of the reduced coefficient matrix.
func (rf *ReducedForm) Matrix() *matrix.Dense { return rf.a.CloneDense() }

// Target returns a copy of the reduced target vector.
func (rf *ReducedForm) Target() []float64 {
	out := make([]float64, len(rf.b))
	copy(out, rf.b)

	return out
}

// Free returns the free column indices in increasing order.
func (rf *ReducedForm) Free() []int { return append([]int(nil), rf.free...) }

// Pivots returns the pivot column of every pivot row, in row order.
func (rf *ReducedForm) Pivots() []int { return append([]int(nil), rf.pivots...) }

// Rank returns the number of pivot rows.
func (rf *ReducedForm) Rank() int { return len(rf.pivots) }

// Cols returns the number of variables.
func (rf *ReducedForm) Cols() int { return rf.a.Cols() }

// Particular returns the solution with every free variable set to zero:
// the reduced target in pivot positions, 0 in free positions.
func (rf *ReducedForm) Particular() vector.Vector {
	x := make(vector.Vector, rf.a.Cols())
	for r, col := range rf.pivots {
		x[col] = rf.b[r]
	}

	return x
}

// Directions returns one free-direction vector per free column, in Free()
// order. Entry at pivot column Pivots()[r] is the reduced A[r][free]; all
// other entries, including the free column itself, are 0. The full solution
// for multipliers m is Particular − Σ m_i·Directions[i], with x[free_i] = m_i.
func (rf *ReducedForm) Directions() []vector.Vector {
	dirs := make([]vector.Vector, len(rf.free))
	for i, f := range rf.free {
		d := make(vector.Vector, rf.a.Cols())
		for r, col := range rf.pivots {
			row, _ := rf.a.RowView(r)
			d[col] = row[f]
		}
		dirs[i] = d
	}

	return dirs
}
