package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/presslin/config"
	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/minsearch"
)

// inTempDir runs the test from an empty directory so no stray presslin.yaml
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return dir
}

func TestDefaults(t *testing.T) {
	inTempDir(t)

	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	require.Equal(t, 0, c.Workers)
	require.Equal(t, 1, c.SearchWorkers)
	require.Equal(t, gaussjordan.DefaultEpsilon, c.Epsilon)
	require.Equal(t, gaussjordan.DefaultPivotFloor, c.PivotFloor)
	require.Equal(t, minsearch.DeriveBound, c.Bound)
	require.Equal(t, uint64(1)<<32, c.MaxIterations)
	require.Zero(t, c.Timeout)
	require.Equal(t, 2, c.Part)
	require.Equal(t, "info", c.LogLevel)

	so := c.SearchOptions()
	require.Equal(t, minsearch.DefaultOptions().Tolerance, so.Tolerance)
	require.Equal(t, minsearch.DeriveBound, so.Bound)

	o := gaussjordan.NewOptions(c.ReduceOptions()...)
	require.Equal(t, gaussjordan.DefaultEpsilon, o.Epsilon())
}

// TestPrecedence: file < environment < flags.
func TestPrecedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "presslin.yaml"), []byte(
		"workers: 2\nbound: 9\ntimeout: 3s\nlog_format: json\n"), 0o600))
	t.Setenv("PRESSLIN_BOUND", "11")
	t.Setenv("PRESSLIN_INTEGRAL_TOL", "0.05")

	v := config.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 0, "")
	fs.Int("part", 2, "")
	require.NoError(t, config.BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--workers=5"}))

	c, err := config.Load(v, "")
	require.NoError(t, err)
	require.Equal(t, 5, c.Workers, "flag beats file")
	require.Equal(t, 11, c.Bound, "env beats file")
	require.Equal(t, 0.05, c.IntegralTol)
	require.Equal(t, 3*time.Second, c.Timeout)
	require.Equal(t, "json", c.LogFormat)
	require.Equal(t, 2, c.Part, "unset flag keeps the default")

	bo := c.BatchOptions(logrus.New())
	require.Equal(t, 5, bo.Workers)
	require.Equal(t, 3*time.Second, bo.Search.TimeLimit)
	require.Len(t, bo.Reduce, 2)
}

func TestExplicitFile(t *testing.T) {
	dir := inTempDir(t)

	_, err := config.Load(config.New(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("part: 1\n"), 0o600))
	c, err := config.Load(config.New(), path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Part)
}

func TestValidate(t *testing.T) {
	inTempDir(t)
	base, err := config.Load(config.New(), "")
	require.NoError(t, err)

	cases := map[string]func(*config.Config){
		"workers":     func(c *config.Config) { c.Workers = -1 },
		"search":      func(c *config.Config) { c.SearchWorkers = -1 },
		"epsilon":     func(c *config.Config) { c.Epsilon = -1 },
		"floor":       func(c *config.Config) { c.PivotFloor = 0 },
		"bound":       func(c *config.Config) { c.Bound = -3 },
		"timeout":     func(c *config.Config) { c.Timeout = -time.Second },
		"part":        func(c *config.Config) { c.Part = 3 },
		"integral":    func(c *config.Config) { c.IntegralTol = 0.5 },
		"nonnegative": func(c *config.Config) { c.NonNegativeTol = -0.1 },
		"level":       func(c *config.Config) { c.LogLevel = "loud" },
		"format":      func(c *config.Config) { c.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig, name)
	}

	t.Setenv("PRESSLIN_PART", "7")
	_, err = config.Load(config.New(), "")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	c := config.Config{LogLevel: "warn", LogFormat: "json"}
	var buf bytes.Buffer
	l := c.NewLogger(&buf)
	require.Equal(t, logrus.WarnLevel, l.GetLevel())

	l.Info("hidden")
	l.WithField("kind", "infeasible").Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"kind":"infeasible"`)
}
