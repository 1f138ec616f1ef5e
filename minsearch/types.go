// SPDX-License-Identifier: MIT

package minsearch

import (
	"errors"
	"time"

	"github.com/katalvlaran/presslin/vector"
)

var (
	// ErrInfeasible is returned when no enumerated multiplier tuple yields a
	// non-negative integral solution (or the equations are inconsistent).
	ErrInfeasible = errors.New("minsearch: no non-negative integer solution")

	// ErrSearchBudgetExceeded is returned when the enumeration space exceeds
	// MaxIterations, the time limit expires, or the context is cancelled.
	ErrSearchBudgetExceeded = errors.New("minsearch: search budget exceeded")

	// ErrBadOptions signals an invalid Options value.
	ErrBadOptions = errors.New("minsearch: invalid options")
)

// DeriveBound asks Search to derive the per-multiplier bound from the system:
// ceil of the largest target entry.
//
// The derived bound is exhaustive only when every coefficient is
// non-negative. With negative coefficients a free variable may need to exceed
// every target (x0 − x1 = −2 needs x1 = 2 against a derived bound of 0), so
// the search can report ErrInfeasible for a solvable system. Set Bound
// explicitly for such systems.
const DeriveBound = -1

// Options configures Search.
//
// Fields:
//   - Bound         inclusive upper limit of every free multiplier;
//     DeriveBound (−1) derives it from the largest target.
//   - Tolerance     slacks for the non-negative and integral predicates.
//   - MaxIterations upper limit on the enumeration space size; 0 means unlimited.
//   - TimeLimit     soft wall-clock budget; 0 means none.
//   - Workers       number of goroutines sharing the enumeration; 0 or 1 runs inline.
type Options struct {
	Bound         int
	Tolerance     vector.Tolerance
	MaxIterations uint64
	TimeLimit     time.Duration
	Workers       int
}

// DefaultOptions returns a derived bound, default tolerances, no iteration
// or time budget, and a single worker.
func DefaultOptions() Options {
	return Options{
		Bound:     DeriveBound,
		Tolerance: vector.DefaultTolerance(),
		Workers:   1,
	}
}

// Result is the outcome of a successful Search.
type Result struct {
	// Total is the minimal number of activations, Σ Solution.
	Total int64

	// Solution holds the per-variable activation counts, free variables included.
	Solution []int64

	// Multipliers are the free-variable values of the winning tuple, in
	// ReducedForm.Free() order.
	Multipliers []int

	// Bound is the effective inclusive multiplier bound.
	Bound int

	// Space is the number of tuples in the enumeration space.
	Space uint64

	// Evaluated counts tuples whose candidate vector was computed, Pruned
	// counts tuples skipped by the Σm ≥ best rule, Rejected counts evaluated
	// candidates failing the non-negative or integral predicate, or whose
	// rounded form does not satisfy the original equations.
	Evaluated, Pruned, Rejected uint64
}
