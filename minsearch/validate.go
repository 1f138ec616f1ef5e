// SPDX-License-Identifier: MIT

package minsearch

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/odometer"
)

// validateOptions checks Options without referencing a system.
func validateOptions(opts Options) error {
	if opts.Bound < DeriveBound {
		return fmt.Errorf("Bound=%d: %w", opts.Bound, ErrBadOptions)
	}
	if opts.TimeLimit < 0 {
		return fmt.Errorf("TimeLimit=%s: %w", opts.TimeLimit, ErrBadOptions)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("Workers=%d: %w", opts.Workers, ErrBadOptions)
	}
	if err := opts.Tolerance.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOptions, err)
	}

	return nil
}

// resolveBound returns the effective multiplier bound for rf.
func resolveBound(rf *gaussjordan.ReducedForm, bound int) (int, error) {
	if bound != DeriveBound {
		return bound, nil
	}
	mt := rf.System().MaxTarget()
	if mt >= math.MaxInt32 {
		return 0, fmt.Errorf("derived bound from target %g: %w", mt, ErrSearchBudgetExceeded)
	}

	return int(math.Ceil(mt)), nil
}

// buildSpace creates the multiplier space and enforces the iteration budget
// before any tuple is evaluated.
func buildSpace(dims, bound int, maxIter uint64) (odometer.Space, error) {
	space, err := odometer.New(dims, bound)
	if err != nil {
		if errors.Is(err, odometer.ErrSpaceTooLarge) {
			return odometer.Space{}, fmt.Errorf("%w: %w", ErrSearchBudgetExceeded, err)
		}
		return odometer.Space{}, fmt.Errorf("%w: %w", ErrBadOptions, err)
	}
	if maxIter > 0 && space.Len() > maxIter {
		return odometer.Space{}, fmt.Errorf("space %d > MaxIterations %d: %w",
			space.Len(), maxIter, ErrSearchBudgetExceeded)
	}

	return space, nil
}

// budgetError reports an expired context as ErrSearchBudgetExceeded while
// keeping the cause matchable.
func budgetError(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrSearchBudgetExceeded, context.Cause(ctx))
}
