// SPDX-License-Identifier: MIT

// Package minsearch - exhaustive minimization over the free multipliers.
//
// Search enumerates every multiplier tuple m in {0..Bound}^k (k = number of
// free columns) in odometer order and keeps the feasible candidate with the
// smallest total:
//
//  1. prune when Σm ≥ best total so far (every free variable contributes its
//     multiplier to the total, and pivot variables are non-negative);
//  2. x = Particular − Σ m_i·Directions[i], x[Free[i]] = m_i;
//  3. reject unless x is non-negative and integral within Tolerance;
//  4. round x and reject unless it satisfies the original equations;
//  5. total = Σ round(x); replace the incumbent when strictly smaller.
//
// The winner is checked once more against the original equations before it
// is returned.
//
// Concurrency:
//   - Workers > 1 splits the index space into contiguous ranges; each worker
//     owns its buffers and incumbent. Results combine by minimum total with the
//     lowest enumeration index breaking ties, so the outcome does not depend
//     on the worker count.
//
// Budget:
//   - The space size is checked against MaxIterations before enumeration.
//   - Context and time limit are polled every 4096 tuples per worker.

package minsearch

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/matrix"
	"github.com/katalvlaran/presslin/odometer"
	"github.com/katalvlaran/presslin/vector"
)

// residualSlack bounds |A·round(x) − b| per row. Rounded candidates are
// integral, so any miss larger than float noise is a real violation.
const residualSlack = 1e-6

// engine holds the read-only search data shared by all workers.
type engine struct {
	particular vector.Vector
	dirs       []vector.Vector
	free       []int
	tol        vector.Tolerance
	space      odometer.Space

	// a and b are the unreduced equations.
	a *matrix.Dense
	b []float64
}

// satisfies reports whether the integral vector x solves A·x = b within
// residualSlack on every row.
func (e *engine) satisfies(x vector.Vector) bool {
	var (
		row []float64
		acc float64
		i   int
		j   int
	)
	for i = range e.b {
		row, _ = e.a.RowView(i) // i < Rows by construction
		acc = -e.b[i]
		for j = range row {
			acc += row[j] * x[j]
		}
		if math.Abs(acc) > residualSlack {
			return false
		}
	}

	return true
}

// incumbent is the best candidate seen by one worker.
type incumbent struct {
	found bool
	total float64
	index uint64
	x     vector.Vector
	m     []int
}

// better reports whether (total, index) beats the incumbent.
func (b *incumbent) better(total float64, index uint64) bool {
	if !b.found {
		return true
	}
	if total != b.total {
		return total < b.total
	}

	return index < b.index
}

// worker walks one range of the space.
type worker struct {
	e     *engine
	x     vector.Vector
	xr    vector.Vector
	best  incumbent
	steps uint64

	evaluated, pruned, rejected uint64
}

// budgetCheck polls the context every 4096 tuples.
func (w *worker) budgetCheck(ctx context.Context) error {
	w.steps++
	if (w.steps & 4095) != 0 {
		return nil
	}
	if ctx.Err() != nil {
		return budgetError(ctx)
	}

	return nil
}

// run enumerates r and records the best feasible candidate.
func (w *worker) run(ctx context.Context, r odometer.Range) error {
	var (
		c    = w.e.space.RangeCursor(r)
		m    []int
		sumM int
		i, k int
		tot  float64
		err  error
	)
	for c.Next() {
		if err = w.budgetCheck(ctx); err != nil {
			return err
		}
		m = c.Tuple()
		sumM = 0
		for _, k = range m {
			sumM += k
		}
		if w.best.found && float64(sumM) >= w.best.total {
			w.pruned++
			continue
		}

		w.evaluated++
		copy(w.x, w.e.particular)
		for i, k = range m {
			_ = vector.SubScaledInPlace(w.x, w.e.dirs[i], k) // same length, k >= 0
		}
		for i, k = range m {
			w.x[w.e.free[i]] = float64(k)
		}
		if !vector.IsFeasibleCount(w.x, w.e.tol) {
			w.rejected++
			continue
		}
		for i = range w.x {
			w.xr[i] = math.Round(w.x[i])
		}
		if !w.e.satisfies(w.xr) {
			w.rejected++
			continue
		}

		tot = w.xr.Sum()
		if w.best.better(tot, c.Index()) {
			w.best.found = true
			w.best.total = tot
			w.best.index = c.Index()
			w.best.x = w.xr.Clone()
			w.best.m = append(w.best.m[:0], m...)
		}
	}

	return nil
}

// Search finds the minimal-total non-negative integer solution within the
// solution space described by rf.
//
// Errors:
//   - ErrBadOptions for invalid options.
//   - ErrSearchBudgetExceeded when the space exceeds MaxIterations, the time
//     limit expires, or ctx is done (context.Cause stays matchable).
//   - ErrInfeasible when no tuple yields a feasible candidate.
//   - gaussjordan.ErrNumericInstability when the winner fails the final
//     residual check against the original equations.
func Search(ctx context.Context, rf *gaussjordan.ReducedForm, opts Options) (Result, error) {
	if rf == nil {
		return Result{}, fmt.Errorf("nil reduced form: %w", ErrBadOptions)
	}
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	bound, err := resolveBound(rf, opts.Bound)
	if err != nil {
		return Result{}, err
	}
	e := engine{
		particular: rf.Particular(),
		dirs:       rf.Directions(),
		free:       rf.Free(),
		tol:        opts.Tolerance,
		a:          rf.System().Coefficients(),
		b:          rf.System().Target(),
	}
	if e.space, err = buildSpace(len(e.free), bound, opts.MaxIterations); err != nil {
		return Result{}, err
	}

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, opts.TimeLimit,
			fmt.Errorf("time limit %s", opts.TimeLimit))
		defer cancel()
	}
	if ctx.Err() != nil {
		return Result{}, budgetError(ctx)
	}

	workers, err := e.runWorkers(ctx, opts.Workers)
	if err != nil {
		return Result{}, err
	}

	res := Result{Bound: bound, Space: e.space.Len()}
	var best incumbent
	for _, w := range workers {
		res.Evaluated += w.evaluated
		res.Pruned += w.pruned
		res.Rejected += w.rejected
		if w.best.found && best.better(w.best.total, w.best.index) {
			best = w.best
		}
	}
	if !best.found {
		return res, fmt.Errorf("%d tuples over bound %d: %w", res.Space, bound, ErrInfeasible)
	}

	res.Solution = best.x.Round()
	res.Multipliers = best.m
	for _, v := range res.Solution {
		res.Total += v
	}
	if err = verify(rf.System(), res.Solution); err != nil {
		return res, err
	}

	return res, nil
}

// runWorkers splits the space across n workers and waits for all of them.
func (e *engine) runWorkers(ctx context.Context, n int) ([]*worker, error) {
	ranges := e.space.Split(n)
	workers := make([]*worker, len(ranges))
	for i := range workers {
		workers[i] = &worker{
			e:  e,
			x:  make(vector.Vector, len(e.particular)),
			xr: make(vector.Vector, len(e.particular)),
		}
	}
	if len(ranges) == 1 {
		return workers, workers[0].run(ctx, ranges[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range ranges {
		w, r := workers[i], ranges[i]
		g.Go(func() error { return w.run(gctx, r) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return workers, nil
}

// verify substitutes the rounded solution into the original equations.
func verify(sys *gaussjordan.System, sol []int64) error {
	x := make([]float64, len(sol))
	for i, v := range sol {
		x[i] = float64(v)
	}
	res, err := sys.Residual(x)
	if err != nil {
		return err
	}
	for i, r := range res {
		if math.Abs(r) > residualSlack {
			return fmt.Errorf("row %d residual %g after rounding: %w", i, r, gaussjordan.ErrNumericInstability)
		}
	}

	return nil
}
