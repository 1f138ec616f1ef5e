// SPDX-License-Identifier: MIT

// Package batch runs many independent minimization problems concurrently and
// aggregates their outcomes.
//
// Every instance is solved in its own goroutine (bounded by Options.Workers)
// against private copies of its data; the only shared state is the per-index
// outcome slot each goroutine writes once. Failures are classified by Kind and
// reported separately; they never contribute to Report.Sum.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/machine"
	"github.com/katalvlaran/presslin/minsearch"
)

// Kind classifies an instance outcome.
type Kind int

const (
	// Solved means the instance contributed to Report.Sum.
	Solved Kind = iota
	// MalformedInput covers unparsable lines and invalid systems.
	MalformedInput
	// NumericInstability covers untrusted pivots, residuals and rounding.
	NumericInstability
	// Infeasible covers inconsistent systems and exhausted searches.
	Infeasible
	// SearchBudgetExceeded covers iteration, time and cancellation limits.
	SearchBudgetExceeded
	// Failed covers anything else.
	Failed
)

var kindNames = [...]string{
	Solved:               "solved",
	MalformedInput:       "malformed_input",
	NumericInstability:   "numeric_instability",
	Infeasible:           "infeasible",
	SearchBudgetExceeded: "search_budget_exceeded",
	Failed:               "failed",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// Classify maps an error returned by the solving pipeline to its Kind.
// A nil error is Solved.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return Solved
	case errors.Is(err, machine.ErrMalformedInput),
		errors.Is(err, gaussjordan.ErrEmptySystem),
		errors.Is(err, gaussjordan.ErrDimensionMismatch),
		errors.Is(err, gaussjordan.ErrNaNInf):
		return MalformedInput
	case errors.Is(err, gaussjordan.ErrNumericInstability):
		return NumericInstability
	case errors.Is(err, minsearch.ErrInfeasible),
		errors.Is(err, gaussjordan.ErrInconsistent),
		errors.Is(err, machine.ErrNoToggleSolution):
		return Infeasible
	case errors.Is(err, minsearch.ErrSearchBudgetExceeded),
		errors.Is(err, machine.ErrToggleLimit),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return SearchBudgetExceeded
	default:
		return Failed
	}
}

// Instance is one problem. Exactly one of System or Err is set; Err records
// a failure that happened before solving (typically a malformed line).
type Instance struct {
	Name   string
	System *gaussjordan.System
	Err    error
}

// Outcome is the result of one instance.
type Outcome struct {
	Index    int
	Name     string
	Kind     Kind
	Total    int64
	Solution []int64
	Err      error
	Elapsed  time.Duration
}

// Report aggregates a run.
type Report struct {
	RunID    uuid.UUID
	Sum      int64
	Solved   int
	Outcomes []Outcome // every instance, input order
	Failures []Outcome // failed instances, input order
}

// Options configures Run and RunToggles.
type Options struct {
	// Workers bounds concurrent instances; 0 means runtime.NumCPU().
	Workers int

	// Reduce and Search configure the per-instance pipeline.
	Reduce []gaussjordan.Option
	Search minsearch.Options

	// Logger receives one entry per instance and a run summary; nil discards.
	Logger logrus.FieldLogger
}

// DefaultOptions returns NumCPU workers, default numeric policy and search
// options, and a discarding logger.
func DefaultOptions() Options {
	return Options{Search: minsearch.DefaultOptions()}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.NumCPU()
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// solveFunc solves instance i; it returns the total and, optionally, the solution.
type solveFunc func(ctx context.Context, i int) (int64, []int64, error)

// Run reduces and searches every instance (part two: fewest counter presses).
func Run(ctx context.Context, instances []Instance, opts Options) Report {
	names := make([]string, len(instances))
	for i, in := range instances {
		names[i] = in.Name
	}

	return run(ctx, names, opts, func(ctx context.Context, i int) (int64, []int64, error) {
		in := instances[i]
		if in.Err != nil {
			return 0, nil, in.Err
		}
		res, err := minsearch.Solve(ctx, in.System, opts.Search, opts.Reduce...)
		if err != nil {
			return 0, nil, err
		}

		return res.Total, res.Solution, nil
	})
}

// RunToggles solves the indicator-light problem of every entry (part one:
// fewest button toggles). Malformed entries are reported as failures.
func RunToggles(ctx context.Context, entries []machine.Entry, opts Options) Report {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = lineName(e.Line)
	}

	return run(ctx, names, opts, func(ctx context.Context, i int) (int64, []int64, error) {
		e := entries[i]
		if e.Err != nil {
			return 0, nil, e.Err
		}
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		n, err := e.Machine.MinToggles()

		return int64(n), nil, err
	})
}

// FromEntries turns parsed lines into counter-system instances.
func FromEntries(entries []machine.Entry) []Instance {
	out := make([]Instance, len(entries))
	for i, e := range entries {
		out[i].Name = lineName(e.Line)
		if e.Err != nil {
			out[i].Err = e.Err
			continue
		}
		out[i].System, out[i].Err = e.Machine.Equations()
	}

	return out
}

func lineName(line int) string { return fmt.Sprintf("line %d", line) }

// run fans solve out over a bounded errgroup and aggregates the outcomes.
func run(ctx context.Context, names []string, opts Options, solve solveFunc) Report {
	var (
		rep = Report{RunID: uuid.New(), Outcomes: make([]Outcome, len(names))}
		log = opts.logger().WithField("run_id", rep.RunID.String())
		g   errgroup.Group
	)
	g.SetLimit(opts.workers())
	start := time.Now()

	for i := range names {
		g.Go(func() error {
			t0 := time.Now()
			total, sol, err := solve(ctx, i)
			out := Outcome{
				Index:    i,
				Name:     names[i],
				Kind:     Classify(err),
				Total:    total,
				Solution: sol,
				Err:      err,
				Elapsed:  time.Since(t0),
			}
			if err != nil {
				out.Total, out.Solution = 0, nil
			}
			rep.Outcomes[i] = out
			logOutcome(log, out)

			return nil
		})
	}
	_ = g.Wait() // goroutines never fail; errors live in the outcomes

	for _, out := range rep.Outcomes {
		if out.Kind == Solved {
			rep.Sum += out.Total
			rep.Solved++
			continue
		}
		rep.Failures = append(rep.Failures, out)
	}
	log.WithFields(logrus.Fields{
		"instances": len(names),
		"solved":    rep.Solved,
		"failed":    len(rep.Failures),
		"sum":       rep.Sum,
		"elapsed":   time.Since(start),
	}).Info("batch finished")

	return rep
}

func logOutcome(log logrus.FieldLogger, out Outcome) {
	entry := log.WithFields(logrus.Fields{
		"instance": out.Name,
		"kind":     out.Kind.String(),
		"elapsed":  out.Elapsed,
	})
	if out.Err != nil {
		entry.WithError(out.Err).Warn("instance failed")
		return
	}
	entry.WithField("total", out.Total).Debug("instance solved")
}
