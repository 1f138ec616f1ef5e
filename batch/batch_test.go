package batch_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/presslin/batch"
	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/machine"
	"github.com/katalvlaran/presslin/minsearch"
)

const sample = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}
`

func entries(t *testing.T, input string) []machine.Entry {
	t.Helper()
	es, err := machine.ParseEach(strings.NewReader(input))
	require.NoError(t, err)

	return es
}

func TestRunSample(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := batch.DefaultOptions()
	opts.Workers = 2
	opts.Logger = logger

	rep := batch.Run(context.Background(), batch.FromEntries(entries(t, sample)), opts)
	require.NotEqual(t, uuid.Nil, rep.RunID)
	require.Equal(t, int64(33), rep.Sum)
	require.Equal(t, 3, rep.Solved)
	require.Empty(t, rep.Failures)

	want := []int64{10, 12, 11}
	for i, out := range rep.Outcomes {
		assert.Equal(t, i, out.Index)
		assert.Equal(t, batch.Solved, out.Kind)
		assert.Equal(t, want[i], out.Total)
		assert.NotEmpty(t, out.Solution)
	}

	// Three instance entries plus the summary, all tagged with the run id.
	require.Len(t, hook.AllEntries(), 4)
	for _, e := range hook.AllEntries() {
		assert.Equal(t, rep.RunID.String(), e.Data["run_id"])
	}
	last := hook.LastEntry()
	require.Equal(t, "batch finished", last.Message)
	require.Equal(t, int64(33), last.Data["sum"])
}

// TestRunFailuresAreSeparate: failed instances never contribute to the sum.
func TestRunFailuresAreSeparate(t *testing.T) {
	input := sample + "[.#] (9) {1,1}\n"
	instances := batch.FromEntries(entries(t, input))

	notDivisible, err := gaussjordan.NewSystem([][]float64{{2}}, []float64{3})
	require.NoError(t, err)
	instances = append(instances, batch.Instance{Name: "odd", System: notDivisible})

	logger, hook := test.NewNullLogger()
	opts := batch.DefaultOptions()
	opts.Logger = logger

	rep := batch.Run(context.Background(), instances, opts)
	require.Equal(t, int64(33), rep.Sum)
	require.Equal(t, 3, rep.Solved)
	require.Len(t, rep.Failures, 2)

	require.Equal(t, "line 4", rep.Failures[0].Name)
	require.Equal(t, batch.MalformedInput, rep.Failures[0].Kind)
	require.ErrorIs(t, rep.Failures[0].Err, machine.ErrMalformedInput)

	require.Equal(t, "odd", rep.Failures[1].Name)
	require.Equal(t, batch.Infeasible, rep.Failures[1].Kind)
	require.Zero(t, rep.Failures[1].Total)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Contains(t, []string{"malformed_input", "infeasible"}, e.Data["kind"])
		}
	}
	require.Equal(t, 2, warnings)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := batch.Run(ctx, batch.FromEntries(entries(t, sample)), batch.DefaultOptions())
	require.Zero(t, rep.Sum)
	require.Len(t, rep.Failures, 3)
	for _, f := range rep.Failures {
		require.Equal(t, batch.SearchBudgetExceeded, f.Kind)
	}
}

func TestRunWorkerCountIrrelevant(t *testing.T) {
	instances := batch.FromEntries(entries(t, strings.Repeat(sample, 4)))
	var sums []int64
	for _, n := range []int{1, 3, 16} {
		opts := batch.DefaultOptions()
		opts.Workers = n
		rep := batch.Run(context.Background(), instances, opts)
		require.Len(t, rep.Outcomes, 12)
		sums = append(sums, rep.Sum)
	}
	require.Equal(t, []int64{132, 132, 132}, sums)
}

func TestRunToggles(t *testing.T) {
	input := sample + "[#.] (1) {1,1}\n"

	rep := batch.RunToggles(context.Background(), entries(t, input), batch.DefaultOptions())
	require.Equal(t, int64(7), rep.Sum)
	require.Equal(t, 3, rep.Solved)
	require.Len(t, rep.Failures, 1)
	require.Equal(t, batch.Infeasible, rep.Failures[0].Kind)
	require.Equal(t, "line 4", rep.Failures[0].Name)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want batch.Kind
	}{
		{nil, batch.Solved},
		{fmt.Errorf("line 3: %w", machine.ErrMalformedInput), batch.MalformedInput},
		{gaussjordan.ErrNaNInf, batch.MalformedInput},
		{fmt.Errorf("x: %w", gaussjordan.ErrNumericInstability), batch.NumericInstability},
		{fmt.Errorf("%w: %w", minsearch.ErrInfeasible, gaussjordan.ErrInconsistent), batch.Infeasible},
		{machine.ErrNoToggleSolution, batch.Infeasible},
		{fmt.Errorf("%w: %w", minsearch.ErrSearchBudgetExceeded, context.Canceled), batch.SearchBudgetExceeded},
		{context.DeadlineExceeded, batch.SearchBudgetExceeded},
		{machine.ErrToggleLimit, batch.SearchBudgetExceeded},
		{errors.New("boom"), batch.Failed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, batch.Classify(c.err), "%v", c.err)
	}

	assert.Equal(t, "search_budget_exceeded", batch.SearchBudgetExceeded.String())
	assert.Equal(t, "kind(42)", batch.Kind(42).String())
}
