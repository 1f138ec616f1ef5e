// SPDX-License-Identifier: MIT

package minsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/presslin/gaussjordan"
)

// Solve reduces sys and searches its solution space in one call.
// An inconsistent system is reported as ErrInfeasible; the original
// gaussjordan.ErrInconsistent remains matchable.
func Solve(ctx context.Context, sys *gaussjordan.System, opts Options, reduceOpts ...gaussjordan.Option) (Result, error) {
	rf, err := gaussjordan.Reduce(sys, reduceOpts...)
	if err != nil {
		if errors.Is(err, gaussjordan.ErrInconsistent) {
			return Result{}, fmt.Errorf("%w: %w", ErrInfeasible, err)
		}
		return Result{}, err
	}

	return Search(ctx, rf, opts)
}
