package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/cpumon/internal/format"
	"github.com/agbru/cpumon/internal/sysmon"
	"github.com/agbru/cpumon/internal/ui"
)

// defaultTrailLength is the chart capacity before the first resize.
const defaultTrailLength = 120

// ChartModel renders the system panel: latest readings, sparklines, a CPU
// braille chart and the overload status.
//
// The monitor history only holds a few samples, so the chart keeps its own
// longer trail and appends each sample once, keyed by timestamp.
type ChartModel struct {
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	lastSeen   time.Time
	history    sysmon.History
	threshold  float64
	width      int
	height     int
}

// NewChartModel creates a system panel that flags CPU above threshold.
func NewChartModel(threshold float64) ChartModel {
	return ChartModel{
		cpuHistory: NewRingBuffer(defaultTrailLength),
		memHistory: NewRingBuffer(defaultTrailLength),
		threshold:  threshold,
	}
}

// SetSize updates dimensions and resizes the trails to the chart width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if trail := c.plotWidth(); trail > 0 {
		c.cpuHistory.Resize(trail * 2)
		c.memHistory.Resize(trail)
	}
}

// AddHistory records the samples of h that are newer than any seen before.
func (c *ChartModel) AddHistory(h sysmon.History) {
	c.history = h
	for _, s := range h.Samples() {
		if !s.Timestamp().After(c.lastSeen) {
			continue
		}
		c.lastSeen = s.Timestamp()
		if usage, ok := s.CPU(); ok {
			c.cpuHistory.Push(usage.Value())
		}
		if mb, ok := s.AvailableMemoryMB(); ok {
			c.memHistory.Push(float64(mb))
		}
	}
}

// Reset clears the trails. Samples already seen are not replayed.
func (c *ChartModel) Reset() {
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// Overloaded reports whether the latest history is over the threshold or
// shows scheduling delay.
func (c ChartModel) Overloaded() bool {
	return c.history.IsCPUOverThreshold(sysmon.NewCPUUsage(c.threshold)) || c.history.HasSchedulingDelay()
}

// plotWidth is the number of cells available for a sparkline.
func (c ChartModel) plotWidth() int {
	return c.width - 20
}

// View renders the system panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" System"))
	b.WriteString("\n")

	plotWidth := max(c.plotWidth(), 1)

	cpuText := fmt.Sprintf("%6s", notAvailable)
	if usage, ok := c.history.LatestCPU(); ok {
		cpuText = levelStyle(ui.ClassifyCPU(usage.Value(), c.threshold)).Render(fmt.Sprintf("%6s", usage))
	}
	fmt.Fprintf(&b, " %s %s  %s\n",
		metricLabelStyle.Render("CPU"), cpuText,
		cpuSparklineStyle.Render(RenderSparkline(tail(c.cpuHistory.Slice(), plotWidth))))

	memText := notAvailable
	if mb, ok := c.history.LatestMemoryMB(); ok {
		memText = format.FormatMegabytes(mb)
	}
	fmt.Fprintf(&b, " %s %s  %s\n",
		metricLabelStyle.Render("Mem"), metricValueStyle.Render(fmt.Sprintf("%9s", memText)),
		memSparklineStyle.Render(RenderScaledSparkline(tail(c.memHistory.Slice(), plotWidth), c.memHistory.Max())))

	chartRows := c.height - 2 - 5
	if chartRows > 0 {
		lines := RenderBrailleChart(c.cpuHistory.Slice(), max(c.width-4, 1), chartRows)
		if lines == nil {
			b.WriteString(chartEmptyStyle.Render(" waiting for samples..."))
			b.WriteString(strings.Repeat("\n", chartRows))
		}
		for _, line := range lines {
			b.WriteString(" ")
			b.WriteString(cpuSparklineStyle.Render(line))
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, " %s %s\n", metricLabelStyle.Render("History"), c.history.String())
	fmt.Fprintf(&b, " %s %s", metricLabelStyle.Render("Status "), c.status())

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func (c ChartModel) status() string {
	switch {
	case c.history.Len() == 0:
		return chartEmptyStyle.Render("collecting first samples")
	case c.history.HasSchedulingDelay():
		return statusErrorStyle.Render("OVERLOADED") + " sampler was delayed"
	case c.Overloaded():
		return statusErrorStyle.Render("OVERLOADED") + fmt.Sprintf(" cpu above %.1f%%", c.threshold)
	default:
		return statusRunningStyle.Render("OK")
	}
}

// tail returns the last n values of v.
func tail(v []float64, n int) []float64 {
	if len(v) > n {
		return v[len(v)-n:]
	}
	return v
}

// notAvailable stands in for an absent reading.
const notAvailable = "n/a"
