package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/cpumon/internal/sysmon"
)

// Snapshotter provides the current sample history. *sysmon.Monitor
// implements it.
type Snapshotter interface {
	Snapshot() sysmon.History
}

// SystemCollector exports the sampler history as Prometheus metrics. It
// takes one snapshot per scrape so all metrics of a scrape agree.
type SystemCollector struct {
	src Snapshotter

	cpuUsage        *prometheus.Desc
	memoryAvailable *prometheus.Desc
	overloaded      *prometheus.Desc
	schedulingDelay *prometheus.Desc
	historySamples  *prometheus.Desc
}

// NewSystemCollector creates a collector reading from src.
func NewSystemCollector(src Snapshotter) *SystemCollector {
	return &SystemCollector{
		src: src,
		cpuUsage: prometheus.NewDesc("cpumon_cpu_usage_percent",
			"System-wide CPU utilization of the newest sample.", nil, nil),
		memoryAvailable: prometheus.NewDesc("cpumon_memory_available_megabytes",
			"Available system memory of the newest sample.", nil, nil),
		overloaded: prometheus.NewDesc("cpumon_cpu_overloaded",
			"1 when the recent history shows high CPU or scheduling delay.", nil, nil),
		schedulingDelay: prometheus.NewDesc("cpumon_scheduling_delay",
			"1 when consecutive samples are more than 1.5 refresh intervals apart.", nil, nil),
		historySamples: prometheus.NewDesc("cpumon_history_samples",
			"Number of samples currently held in the history.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *SystemCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpuUsage
	ch <- c.memoryAvailable
	ch <- c.overloaded
	ch <- c.schedulingDelay
	ch <- c.historySamples
}

// Collect implements prometheus.Collector. Readings missing from the
// newest sample are omitted rather than reported as zero.
func (c *SystemCollector) Collect(ch chan<- prometheus.Metric) {
	h := c.src.Snapshot()

	if usage, ok := h.LatestCPU(); ok {
		ch <- prometheus.MustNewConstMetric(c.cpuUsage, prometheus.GaugeValue, usage.Value())
	}
	if mb, ok := h.LatestMemoryMB(); ok {
		ch <- prometheus.MustNewConstMetric(c.memoryAvailable, prometheus.GaugeValue, float64(mb))
	}
	ch <- prometheus.MustNewConstMetric(c.overloaded, prometheus.GaugeValue, boolToFloat(h.IsCPUOverloaded()))
	ch <- prometheus.MustNewConstMetric(c.schedulingDelay, prometheus.GaugeValue, boolToFloat(h.HasSchedulingDelay()))
	ch <- prometheus.MustNewConstMetric(c.historySamples, prometheus.GaugeValue, float64(h.Len()))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
