package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/cpumon/internal/cli"
	apperrors "github.com/agbru/cpumon/internal/errors"
	"github.com/agbru/cpumon/internal/logging"
	"github.com/agbru/cpumon/internal/metrics"
	"github.com/agbru/cpumon/internal/sysmon"
)

// minPollInterval bounds how often watch mode reads the monitor.
const minPollInterval = 50 * time.Millisecond

// pollInterval returns how often to read the monitor so that every sample
// is printed within half an interval of being recorded.
func pollInterval(refresh time.Duration) time.Duration {
	return max(refresh/2, minPollInterval)
}

// runWatch prints each new sample until ctx ends, then prints the summary.
func (a *Application) runWatch(ctx context.Context, src metrics.Snapshotter, out io.Writer) int {
	start := time.Now()
	verbose := !a.Config.Quiet && !a.Config.JSON

	var spin cli.Spinner
	if verbose {
		spin = cli.StartPrimingSpinner(a.ErrWriter, a.Config.Interval)
	}
	stopSpinner := func() {
		if spin != nil {
			spin.Stop()
			spin = nil
		}
	}
	defer stopSpinner()

	follow(ctx, src, pollInterval(a.Config.Interval), func(s sysmon.SystemSample) {
		stopSpinner()
		if verbose {
			cli.DisplaySample(out, s, a.Config.Threshold)
		}
	})
	stopSpinner()

	interrupted := a.Config.Duration > 0 && errors.Is(ctx.Err(), context.Canceled)
	sum := cli.NewSummary(src.Snapshot(), a.Config.Threshold, time.Since(start))
	if code := a.report(out, sum); code != apperrors.ExitSuccess {
		return code
	}

	switch {
	case interrupted:
		return apperrors.ExitErrorCanceled
	case a.Config.FailOnOverload && sum.Overloaded:
		return apperrors.ExitOverloaded
	default:
		return apperrors.ExitSuccess
	}
}

// follow polls src every poll until ctx ends and calls onSample once for
// each sample, oldest first.
func follow(ctx context.Context, src metrics.Snapshotter, poll time.Duration, onSample func(sysmon.SystemSample)) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var lastSeen time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range src.Snapshot().Samples() {
				if s.Timestamp().After(lastSeen) {
					lastSeen = s.Timestamp()
					onSample(s)
				}
			}
		}
	}
}

// report writes the summary in the configured format and the optional
// output file.
func (a *Application) report(out io.Writer, sum cli.Summary) int {
	switch {
	case a.Config.JSON:
		body, err := cli.FormatUsageJSON(sum)
		if err != nil {
			a.logger.Error("failed to encode summary", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintln(out, body)
	case a.Config.Quiet:
		cli.DisplayQuietSummary(out, sum)
	default:
		cli.DisplaySummary(out, sum)
	}

	if err := cli.WriteUsageToFile(sum, a.Config.OutputFile); err != nil {
		a.logger.Error("failed to write output file", err, logging.String("path", a.Config.OutputFile))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
