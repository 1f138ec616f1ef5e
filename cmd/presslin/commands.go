package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/presslin/batch"
	"github.com/katalvlaran/presslin/config"
	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/machine"
	"github.com/katalvlaran/presslin/minsearch"
	"github.com/katalvlaran/presslin/vector"
)

// errInstancesFailed makes the process exit non-zero when any machine failed.
var errInstancesFailed = errors.New("one or more machines failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "presslin",
		Short: "presslin - fewest button presses for factory machines",
		Long: `presslin reads machine descriptions, one per line:

  [.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}

Part 1 finds the fewest button toggles that light the diagram.
Part 2 finds the fewest button presses that bring every counter to its
target, by Gauss-Jordan reduction and an exhaustive search over the free
variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd(), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "presslin %s\n", version)
		},
	}
}

func newSolveCmd() *cobra.Command {
	var cfgPath string
	v := config.New()

	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Solve every machine of an input file (stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.BindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgPath)
			if err != nil {
				return err
			}
			log := cfg.NewLogger(cmd.ErrOrStderr())

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			entries, err := machine.ParseEach(in)
			if err != nil {
				return err
			}

			opts := cfg.BatchOptions(log)
			var rep batch.Report
			if cfg.Part == 1 {
				rep = batch.RunToggles(cmd.Context(), entries, opts)
			} else {
				rep = batch.Run(cmd.Context(), batch.FromEntries(entries), opts)
			}

			return printReport(cmd.OutOrStdout(), rep)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "config file (default ./presslin.yaml when present)")
	f.Int("part", config.DefaultPart, "1: fewest toggles for the lights, 2: fewest presses for the counters")
	f.Int("workers", config.DefaultWorkers, "machines solved concurrently (0: number of CPUs)")
	f.Int("search-workers", config.DefaultSearchWorkers, "goroutines sharing one machine's search")
	f.Int("bound", minsearch.DeriveBound, "inclusive bound of every free variable (-1: largest target)")
	f.Uint64("max-iterations", config.DefaultMaxIterations, "largest search space accepted per machine (0: unlimited)")
	f.Duration("timeout", 0, "time limit per machine (0: none)")
	f.Float64("epsilon", gaussjordan.DefaultEpsilon, "magnitudes at or below are zero during reduction")
	f.Float64("pivot-floor", gaussjordan.DefaultPivotFloor, "smallest magnitude trusted as a pivot")
	f.Float64("nonnegative-tol", vector.DefaultNonNegativeSlack, "candidate entries must exceed -tol")
	f.Float64("integral-tol", vector.DefaultIntegralSlack, "candidate entries must lie within tol of an integer")
	f.String("log-level", config.DefaultLogLevel, "panic|fatal|error|warn|info|debug|trace")
	f.String("log-format", config.DefaultLogFormat, "text|json")

	return cmd
}

func printReport(w io.Writer, rep batch.Report) error {
	fmt.Fprintf(w, "%d\n", rep.Sum)
	if len(rep.Failures) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%d of %d machines failed (run %s):\n", len(rep.Failures), len(rep.Outcomes), rep.RunID)
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "  %s: %s: %v\n", f.Name, f.Kind, f.Err)
	}

	return errInstancesFailed
}
