package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterObservers registers OpenTelemetry observable gauges for CPU
// utilization and available memory on meter. The gauges are fed from a
// fresh snapshot of src on every collection. Unregister the returned
// registration to stop observing.
func RegisterObservers(meter metric.Meter, src Snapshotter) (metric.Registration, error) {
	cpuGauge, err := meter.Float64ObservableGauge("system.cpu.utilization",
		metric.WithDescription("System-wide CPU utilization"),
		metric.WithUnit("%"))
	if err != nil {
		return nil, fmt.Errorf("create cpu gauge: %w", err)
	}
	memGauge, err := meter.Int64ObservableGauge("system.memory.available",
		metric.WithDescription("Memory available to new allocations"),
		metric.WithUnit("MiBy"))
	if err != nil {
		return nil, fmt.Errorf("create memory gauge: %w", err)
	}

	reg, err := meter.RegisterCallback(observeSystem(src, cpuGauge, memGauge), cpuGauge, memGauge)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return reg, nil
}

func observeSystem(src Snapshotter, cpuGauge metric.Float64Observable, memGauge metric.Int64Observable) metric.Callback {
	return func(_ context.Context, o metric.Observer) error {
		h := src.Snapshot()
		if usage, ok := h.LatestCPU(); ok {
			o.ObserveFloat64(cpuGauge, usage.Value())
		}
		if mb, ok := h.LatestMemoryMB(); ok {
			o.ObserveInt64(memGauge, int64(mb))
		}
		return nil
	}
}
