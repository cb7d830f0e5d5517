package metrics

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/agbru/cpumon/internal/sysmon"
)

// recordingObserver captures observed values.
type recordingObserver struct {
	embedded.Observer
	floats map[metric.Float64Observable]float64
	ints   map[metric.Int64Observable]int64
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		floats: map[metric.Float64Observable]float64{},
		ints:   map[metric.Int64Observable]int64{},
	}
}

func (o *recordingObserver) ObserveFloat64(inst metric.Float64Observable, v float64, _ ...metric.ObserveOption) {
	o.floats[inst] = v
}

func (o *recordingObserver) ObserveInt64(inst metric.Int64Observable, v int64, _ ...metric.ObserveOption) {
	o.ints[inst] = v
}

func TestRegisterObservers(t *testing.T) {
	t.Parallel()
	meter := noop.NewMeterProvider().Meter("cpumon")
	reg, err := RegisterObservers(meter, historyOf(time.Second))
	if err != nil {
		t.Fatalf("RegisterObservers() error = %v", err)
	}
	if err := reg.Unregister(); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
}

func TestObserveSystem(t *testing.T) {
	t.Parallel()
	meter := noop.NewMeterProvider().Meter("cpumon")
	cpuGauge, _ := meter.Float64ObservableGauge("cpu")
	memGauge, _ := meter.Int64ObservableGauge("mem")

	t.Run("reports newest readings", func(t *testing.T) {
		src := historyOf(time.Second,
			sysmon.NewSystemSample(epoch, sysmon.WithCPU(sysmon.NewCPUUsage(10))),
			sysmon.NewSystemSample(epoch.Add(time.Second),
				sysmon.WithCPU(sysmon.NewCPUUsage(62.5)), sysmon.WithAvailableMemoryMB(4096)),
		)
		o := newRecordingObserver()
		if err := observeSystem(src, cpuGauge, memGauge)(context.Background(), o); err != nil {
			t.Fatalf("callback error = %v", err)
		}
		if got := o.floats[cpuGauge]; got != 62.5 {
			t.Errorf("cpu = %v, want 62.5", got)
		}
		if got := o.ints[memGauge]; got != 4096 {
			t.Errorf("memory = %v, want 4096", got)
		}
	})

	t.Run("skips absent readings", func(t *testing.T) {
		o := newRecordingObserver()
		if err := observeSystem(historyOf(time.Second), cpuGauge, memGauge)(context.Background(), o); err != nil {
			t.Fatalf("callback error = %v", err)
		}
		if len(o.floats) != 0 || len(o.ints) != 0 {
			t.Errorf("observed %v %v from an empty history", o.floats, o.ints)
		}
	})
}
