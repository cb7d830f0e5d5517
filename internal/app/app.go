// Package app wires configuration, the process-wide monitor and the three
// output modes (line-oriented watch, HTTP exporter and TUI dashboard).
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/agbru/cpumon/internal/config"
	apperrors "github.com/agbru/cpumon/internal/errors"
	"github.com/agbru/cpumon/internal/logging"
	"github.com/agbru/cpumon/internal/sysmon"
	"github.com/agbru/cpumon/internal/tui"
	"github.com/agbru/cpumon/internal/ui"
)

// Application represents the cpumon application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	logger logging.Logger
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "cpumon"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		logger:    logging.NewLogger(errWriter, "cpumon"),
	}, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	a.setup()

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	if a.Config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Duration)
		defer cancel()
	}

	mon := sysmon.GetOrInit(a.Config.Interval)
	defer mon.Close()

	switch {
	case a.Config.TUI:
		return tui.Run(ctx, mon, a.Config, Version)
	case a.Config.Listen != "":
		return a.runWithServer(ctx, mon, out)
	default:
		return a.runWatch(ctx, mon, out)
	}
}

// setup applies the process-wide settings: log level, theme, sampler
// logger and GOMAXPROCS.
func (a *Application) setup() {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)
	sysmon.SetLogger(a.logger)

	// Quota-limited containers report fewer CPUs than the host.
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		a.logger.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		a.logger.Error("failed to set GOMAXPROCS", err)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForError maps an error returned by New to a process exit code.
func ExitCodeForError(err error) int {
	var cfgErr apperrors.ConfigError
	switch {
	case err == nil, IsHelpError(err):
		return apperrors.ExitSuccess
	case errors.As(err, &cfgErr):
		return apperrors.ExitErrorConfig
	default:
		return apperrors.ExitErrorGeneric
	}
}
