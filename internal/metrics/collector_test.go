package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/cpumon/internal/sysmon"
)

type staticSource struct{ h sysmon.History }

func (s staticSource) Snapshot() sysmon.History { return s.h }

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func historyOf(interval time.Duration, samples ...sysmon.SystemSample) staticSource {
	return staticSource{sysmon.NewHistory(samples, interval)}
}

func TestSystemCollector_Overloaded(t *testing.T) {
	t.Parallel()
	src := historyOf(5*time.Second,
		sysmon.NewSystemSample(epoch, sysmon.WithCPU(sysmon.NewCPUUsage(40))),
		sysmon.NewSystemSample(epoch.Add(5*time.Second),
			sysmon.WithCPU(sysmon.NewCPUUsage(95)), sysmon.WithAvailableMemoryMB(8000)),
	)
	c := NewSystemCollector(src)

	expected := `
# HELP cpumon_cpu_overloaded 1 when the recent history shows high CPU or scheduling delay.
# TYPE cpumon_cpu_overloaded gauge
cpumon_cpu_overloaded 1
# HELP cpumon_cpu_usage_percent System-wide CPU utilization of the newest sample.
# TYPE cpumon_cpu_usage_percent gauge
cpumon_cpu_usage_percent 95
# HELP cpumon_history_samples Number of samples currently held in the history.
# TYPE cpumon_history_samples gauge
cpumon_history_samples 2
# HELP cpumon_memory_available_megabytes Available system memory of the newest sample.
# TYPE cpumon_memory_available_megabytes gauge
cpumon_memory_available_megabytes 8000
# HELP cpumon_scheduling_delay 1 when consecutive samples are more than 1.5 refresh intervals apart.
# TYPE cpumon_scheduling_delay gauge
cpumon_scheduling_delay 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics:\n%v", err)
	}
}

func TestSystemCollector_OmitsAbsentReadings(t *testing.T) {
	t.Parallel()
	c := NewSystemCollector(historyOf(time.Second,
		sysmon.NewSystemSample(epoch),
	))

	// overloaded, scheduling delay and history size only
	if n := testutil.CollectAndCount(c); n != 3 {
		t.Errorf("CollectAndCount() = %d, want 3", n)
	}
	if n := testutil.CollectAndCount(c, "cpumon_cpu_usage_percent"); n != 0 {
		t.Errorf("cpu usage reported without a reading")
	}
}

func TestSystemCollector_SchedulingDelay(t *testing.T) {
	t.Parallel()
	c := NewSystemCollector(historyOf(time.Second,
		sysmon.NewSystemSample(epoch, sysmon.WithCPU(sysmon.NewCPUUsage(5))),
		sysmon.NewSystemSample(epoch.Add(3*time.Second), sysmon.WithCPU(sysmon.NewCPUUsage(5))),
	))

	expected := `
# HELP cpumon_scheduling_delay 1 when consecutive samples are more than 1.5 refresh intervals apart.
# TYPE cpumon_scheduling_delay gauge
cpumon_scheduling_delay 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "cpumon_scheduling_delay"); err != nil {
		t.Errorf("unexpected metrics:\n%v", err)
	}
}

func TestSystemCollector_Registers(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewSystemCollector(historyOf(time.Second))); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := reg.Gather(); err != nil {
		t.Errorf("Gather() error = %v", err)
	}
}
