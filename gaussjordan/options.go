// SPDX-License-Identifier: MIT

// Package gaussjordan: functional configuration for the numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.

package gaussjordan

import "math"

// Numeric policy defaults.
const (
	// DefaultEpsilon: magnitudes at or below it are treated as exact zero.
	DefaultEpsilon = 1e-9

	// DefaultPivotFloor: the smallest magnitude trusted as a genuine non-zero
	// pivot. Magnitudes in (Epsilon, PivotFloor) report ErrNumericInstability.
	DefaultPivotFloor = 1e-6
)

const (
	panicEpsilonInvalid    = "gaussjordan: WithEpsilon: eps must be finite, non-negative"
	panicPivotFloorInvalid = "gaussjordan: WithPivotFloor: floor must be finite, positive"
)

// Option adjusts the numeric policy of Reduce.
type Option func(*Options)

// Options is the resolved numeric policy.
type Options struct {
	eps   float64 // >= 0
	floor float64 // > 0, >= eps after finalizeOptions
}

// Epsilon returns the effective zero threshold.
func (o Options) Epsilon() float64 { return o.eps }

// PivotFloor returns the effective pivot floor.
func (o Options) PivotFloor() float64 { return o.floor }

// WithEpsilon sets the zero threshold. Panics on NaN, Inf or negative eps.
//
// AI-Hints:
//   - 0 restores the exact-equality zero test.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithPivotFloor sets the smallest trusted pivot magnitude. Panics on NaN,
// Inf or non-positive floor.
func WithPivotFloor(floor float64) Option {
	if math.IsNaN(floor) || math.IsInf(floor, 0) || floor <= 0 {
		panic(panicPivotFloorInvalid)
	}

	return func(o *Options) { o.floor = floor }
}

// NewOptions resolves opts on top of the defaults; exported for callers that
// want to inspect the effective policy (e.g. configuration dumps).
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user setters on top of defaults (last-writer-wins)
// and finalizes derived invariants.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:   DefaultEpsilon,
		floor: DefaultPivotFloor,
	}
	for _, set := range user {
		set(&o)
	}
	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces floor >= eps; a floor below eps would leave no
// grey zone and is lifted to eps.
func finalizeOptions(o *Options) {
	if o.floor < o.eps {
		o.floor = o.eps
	}
}
