// Package config parses and validates the cpumon command-line configuration.
//
// Values are resolved in this order, highest priority first: command-line
// flags, CPUMON_* environment variables, the YAML file named by -config,
// and built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/cpumon/internal/errors"
	"github.com/agbru/cpumon/internal/logging"
	"github.com/agbru/cpumon/internal/sysmon"
)

// EnvPrefix is the prefix of every environment variable read by cpumon.
const EnvPrefix = "CPUMON_"

const (
	// MinInterval is the shortest accepted sampling interval. Shorter
	// intervals make the CPU deltas too coarse to be meaningful.
	MinInterval = 100 * time.Millisecond
	// DefaultThreshold is the default CPU percentage considered overloaded.
	DefaultThreshold = sysmon.OverloadThreshold
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Interval is the sampler refresh interval.
	Interval time.Duration
	// Duration bounds watch mode; zero runs until interrupted.
	Duration time.Duration
	// Threshold is the CPU percentage above which a sample counts as
	// overloaded in summaries and for FailOnOverload.
	Threshold float64
	// OutputFile receives the final usage snapshot as JSON when set.
	OutputFile string
	// JSON prints the final summary as JSON.
	JSON bool
	// Quiet suppresses per-sample output.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI starts the interactive dashboard.
	TUI bool
	// Listen is the HTTP listen address; empty disables the server.
	Listen string
	// FailOnOverload makes watch mode exit with ExitOverloaded when the
	// final history is overloaded.
	FailOnOverload bool
	// LogLevel is the minimum zerolog level name.
	LogLevel string
	// ConfigFile is the YAML file the configuration was read from.
	ConfigFile string
}

// Default returns the built-in defaults.
func Default() AppConfig {
	return AppConfig{
		Interval:  sysmon.DefaultRefreshInterval,
		Threshold: DefaultThreshold,
		LogLevel:  DefaultLogLevel,
	}
}

// ParseConfig parses args (without the program name), merges environment
// and config-file values and validates the result. Usage and flag errors
// are written to errWriter. A -h/-help request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := Default()
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Sampling interval (e.g. 1s, 5s).")
	fs.DurationVar(&cfg.Duration, "duration", 0, "How long to watch before printing a summary (0 = until interrupted).")
	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "CPU percentage considered overloaded.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the final usage snapshot as JSON to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the final summary as JSON.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print the final summary.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also honours NO_COLOR).")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the interactive dashboard.")
	fs.StringVar(&cfg.Listen, "listen", "", "Serve /metrics, /healthz and /snapshot on this address (e.g. :9100).")
	fs.BoolVar(&cfg.FailOnOverload, "fail-on-overload", false, "Exit with status 3 if the final history is overloaded.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Read defaults from this YAML file.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if err := resolve(&cfg, fs); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// resolve merges the config file and environment into cfg and validates it.
func resolve(cfg *AppConfig, fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		fc.apply(cfg, fs)
	}
	applyEnvOverrides(cfg, fs)
	return cfg.Validate()
}

// Validate checks the configuration for invalid values and incompatible
// options. It returns an apperrors.ConfigError describing the first problem.
func (c AppConfig) Validate() error {
	if c.Interval < MinInterval {
		return apperrors.NewConfigError("interval must be at least %s, got %s", MinInterval, c.Interval)
	}
	if c.Duration < 0 {
		return apperrors.NewConfigError("duration must not be negative, got %s", c.Duration)
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return apperrors.NewConfigError("threshold must be between 0 and 100, got %g", c.Threshold)
	}
	if c.TUI && (c.JSON || c.Quiet) {
		return apperrors.NewConfigError("-tui cannot be combined with -json or -quiet")
	}
	if c.TUI && c.Listen != "" {
		return apperrors.NewConfigError("-tui cannot be combined with -listen")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}
