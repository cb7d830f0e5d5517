package app

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/cpumon/internal/errors"
	"github.com/agbru/cpumon/internal/logging"
	"github.com/agbru/cpumon/internal/metrics"
	"github.com/agbru/cpumon/internal/server"
)

// meterName is the instrumentation scope of the OpenTelemetry gauges.
const meterName = "github.com/agbru/cpumon"

// runWithServer runs watch mode next to the HTTP exporter. The server stops
// when watch mode ends; a server failure ends watch mode.
func (a *Application) runWithServer(ctx context.Context, src metrics.Snapshotter, out io.Writer) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Gauges are read by whatever MeterProvider the embedding program
	// installs; the default global provider discards them.
	reg, err := metrics.RegisterObservers(otel.Meter(meterName), src)
	if err != nil {
		a.logger.Error("failed to register OpenTelemetry gauges", err)
	} else {
		defer func() {
			if err := reg.Unregister(); err != nil {
				a.logger.Error("failed to unregister OpenTelemetry gauges", err)
			}
		}()
	}

	srv := server.New(a.Config.Listen, src, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	code := apperrors.ExitSuccess
	g.Go(func() error {
		defer cancel()
		code = a.runWatch(gctx, src, out)
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("http server failed", err, logging.String("addr", a.Config.Listen))
		return apperrors.ExitErrorGeneric
	}
	return code
}
