// SPDX-License-Identifier: MIT

// Package vector implements the dense real-vector algebra used by the
// minimization search: elementwise subtraction, scaling by non-negative
// integers, and tolerance-based predicates for recognising non-negative
// integral counts recovered through floating-point elimination.
//
// Tolerances are explicit values (Tolerance) rather than package constants:
// too tight and valid integer solutions are rejected, too loose and invalid
// ones are accepted.
package vector

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch indicates operands of different lengths.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")

	// ErrNegativeScale indicates a negative integer multiplier.
	ErrNegativeScale = errors.New("vector: scale must be non-negative")

	// ErrBadTolerance indicates a NaN, negative, or meaningless tolerance.
	ErrBadTolerance = errors.New("vector: invalid tolerance")
)

// Default slacks. NonNegative accepts entries > -0.5; Integral accepts entries
// whose distance to the nearest integer is at most 0.1.
const (
	DefaultNonNegativeSlack = 0.5
	DefaultIntegralSlack    = 0.1
)

// Vector is a dense real vector; its length equals the column count of the
// system it belongs to.
type Vector []float64

// Tolerance bundles the slacks used by IsNonNegative and IsIntegral.
type Tolerance struct {
	// NonNegative: an entry x passes when x > -NonNegative.
	NonNegative float64
	// Integral: an entry x passes when |x - round(x)| <= Integral.
	Integral float64
}

// DefaultTolerance returns the documented default slacks.
func DefaultTolerance() Tolerance {
	return Tolerance{NonNegative: DefaultNonNegativeSlack, Integral: DefaultIntegralSlack}
}

// Validate rejects NaN/Inf/negative slacks and an Integral slack of 0.5 or
// more, which would accept every real number.
func (t Tolerance) Validate() error {
	if math.IsNaN(t.NonNegative) || math.IsInf(t.NonNegative, 0) || t.NonNegative < 0 {
		return fmt.Errorf("NonNegative=%g: %w", t.NonNegative, ErrBadTolerance)
	}
	if math.IsNaN(t.Integral) || t.Integral < 0 || t.Integral >= 0.5 {
		return fmt.Errorf("Integral=%g: %w", t.Integral, ErrBadTolerance)
	}

	return nil
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)

	return out
}

// Sum returns the plain left-to-right sum of the entries.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s
}

// Round returns the nearest integer of every entry (half away from zero).
func (v Vector) Round() []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(math.Round(x))
	}

	return out
}

// Sub returns a - b as a fresh vector.
func Sub(a, b Vector) (Vector, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("Sub(%d,%d): %w", len(a), len(b), ErrDimensionMismatch)
	}
	out := make(Vector, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out, nil
}

// Scale returns k*v for a non-negative integer k.
func Scale(v Vector, k int) (Vector, error) {
	if k < 0 {
		return nil, fmt.Errorf("Scale(%d): %w", k, ErrNegativeScale)
	}
	out := make(Vector, len(v))
	f := float64(k)
	for i, x := range v {
		out[i] = f * x
	}

	return out, nil
}

// SubScaledInPlace performs dst -= k*dir without allocating. It is the
// hot-loop form of Sub(dst, Scale(dir, k)). k == 0 leaves dst untouched.
func SubScaledInPlace(dst, dir Vector, k int) error {
	if len(dst) != len(dir) {
		return fmt.Errorf("SubScaledInPlace(%d,%d): %w", len(dst), len(dir), ErrDimensionMismatch)
	}
	if k < 0 {
		return fmt.Errorf("SubScaledInPlace(k=%d): %w", k, ErrNegativeScale)
	}
	if k == 0 {
		return nil
	}
	f := float64(k)
	for i := range dst {
		dst[i] -= f * dir[i]
	}

	return nil
}

// IsNonNegative reports whether every entry is > -tol.NonNegative.
func IsNonNegative(v Vector, tol Tolerance) bool {
	for _, x := range v {
		if !(x > -tol.NonNegative) { // NaN fails too
			return false
		}
	}

	return true
}

// IsIntegral reports whether every entry lies within tol.Integral of an
// integer, i.e. its fractional part is near 0 or near 1.
func IsIntegral(v Vector, tol Tolerance) bool {
	for _, x := range v {
		if !(math.Abs(x-math.Round(x)) <= tol.Integral) {
			return false
		}
	}

	return true
}

// IsFeasibleCount combines both predicates: the vector can be read as a list
// of non-negative integer counts.
func IsFeasibleCount(v Vector, tol Tolerance) bool {
	return IsNonNegative(v, tol) && IsIntegral(v, tol)
}
