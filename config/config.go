// SPDX-License-Identifier: MIT

// Package config loads process configuration for the presslin CLI.
//
// Precedence, lowest first: built-in defaults, an optional presslin.yaml
// (working directory or an explicit path), PRESSLIN_* environment variables,
// and command-line flags bound with BindFlags.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/presslin/batch"
	"github.com/katalvlaran/presslin/gaussjordan"
	"github.com/katalvlaran/presslin/minsearch"
	"github.com/katalvlaran/presslin/vector"
)

// EnvPrefix prefixes every environment override, e.g. PRESSLIN_WORKERS.
const EnvPrefix = "PRESSLIN"

// Keys.
const (
	KeyWorkers        = "workers"
	KeySearchWorkers  = "search_workers"
	KeyEpsilon        = "epsilon"
	KeyPivotFloor     = "pivot_floor"
	KeyNonNegativeTol = "nonnegative_tol"
	KeyIntegralTol    = "integral_tol"
	KeyBound          = "bound"
	KeyMaxIterations  = "max_iterations"
	KeyTimeout        = "timeout"
	KeyPart           = "part"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

// Defaults not owned by the solver packages. Solver tolerances and the bound
// default to gaussjordan.DefaultEpsilon, gaussjordan.DefaultPivotFloor,
// vector.DefaultNonNegativeSlack, vector.DefaultIntegralSlack and
// minsearch.DeriveBound.
const (
	DefaultWorkers              = 0
	DefaultSearchWorkers        = 1
	DefaultMaxIterations uint64 = 1 << 32
	DefaultPart                 = 2
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the resolved process configuration.
type Config struct {
	Workers        int           `mapstructure:"workers"`
	SearchWorkers  int           `mapstructure:"search_workers"`
	Epsilon        float64       `mapstructure:"epsilon"`
	PivotFloor     float64       `mapstructure:"pivot_floor"`
	NonNegativeTol float64       `mapstructure:"nonnegative_tol"`
	IntegralTol    float64       `mapstructure:"integral_tol"`
	Bound          int           `mapstructure:"bound"`
	MaxIterations  uint64        `mapstructure:"max_iterations"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Part           int           `mapstructure:"part"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
}

// New returns a viper instance carrying the defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeySearchWorkers, DefaultSearchWorkers)
	v.SetDefault(KeyEpsilon, gaussjordan.DefaultEpsilon)
	v.SetDefault(KeyPivotFloor, gaussjordan.DefaultPivotFloor)
	v.SetDefault(KeyNonNegativeTol, vector.DefaultNonNegativeSlack)
	v.SetDefault(KeyIntegralTol, vector.DefaultIntegralSlack)
	v.SetDefault(KeyBound, minsearch.DeriveBound)
	v.SetDefault(KeyMaxIterations, DefaultMaxIterations)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyPart, DefaultPart)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every flag whose name matches a key (dashes allowed in
// place of underscores).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	return err
}

// Load reads the optional config file and unmarshals v. An empty path
// searches presslin.yaml in the working directory; a missing default file is
// not an error, a missing explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("presslin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks ranges before the values reach option constructors that
// panic on programmer error.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers=%d", ErrInvalidConfig, c.Workers)
	case c.SearchWorkers < 0:
		return fmt.Errorf("%w: search_workers=%d", ErrInvalidConfig, c.SearchWorkers)
	case !finite(c.Epsilon) || c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon=%g", ErrInvalidConfig, c.Epsilon)
	case !finite(c.PivotFloor) || c.PivotFloor <= 0:
		return fmt.Errorf("%w: pivot_floor=%g", ErrInvalidConfig, c.PivotFloor)
	case c.Bound < minsearch.DeriveBound:
		return fmt.Errorf("%w: bound=%d", ErrInvalidConfig, c.Bound)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout=%s", ErrInvalidConfig, c.Timeout)
	case c.Part != 1 && c.Part != 2:
		return fmt.Errorf("%w: part=%d", ErrInvalidConfig, c.Part)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format=%q", ErrInvalidConfig, c.LogFormat)
	}
	if err := c.Tolerance().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Tolerance returns the search predicates' slacks.
func (c Config) Tolerance() vector.Tolerance {
	return vector.Tolerance{NonNegative: c.NonNegativeTol, Integral: c.IntegralTol}
}

// ReduceOptions converts the numeric policy. c must be valid.
func (c Config) ReduceOptions() []gaussjordan.Option {
	return []gaussjordan.Option{
		gaussjordan.WithEpsilon(c.Epsilon),
		gaussjordan.WithPivotFloor(c.PivotFloor),
	}
}

// SearchOptions converts the per-instance search budget.
func (c Config) SearchOptions() minsearch.Options {
	return minsearch.Options{
		Bound:         c.Bound,
		Tolerance:     c.Tolerance(),
		MaxIterations: c.MaxIterations,
		TimeLimit:     c.Timeout,
		Workers:       c.SearchWorkers,
	}
}

// BatchOptions assembles the batch configuration around log.
func (c Config) BatchOptions(log logrus.FieldLogger) batch.Options {
	return batch.Options{
		Workers: c.Workers,
		Reduce:  c.ReduceOptions(),
		Search:  c.SearchOptions(),
		Logger:  log,
	}
}

// NewLogger builds a logrus logger writing to out at the configured level
// and format. c must be valid.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	lvl, _ := logrus.ParseLevel(c.LogLevel)
	l.SetLevel(lvl)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return l
}
