package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cpumon/internal/format"
	"github.com/agbru/cpumon/internal/metrics"
)

// MetricsModel displays the dashboard's own Go runtime statistics so the
// cost of monitoring stays visible.
type MetricsModel struct {
	stats  metrics.RuntimeSnapshot
	width  int
	height int
}

// NewMetricsModel creates a new runtime panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateRuntime stores the latest runtime reading.
func (m *MetricsModel) UpdateRuntime(msg RuntimeMsg) {
	m.stats = metrics.RuntimeSnapshot(msg)
}

// View renders the runtime panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 0)

	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render(" Monitor runtime"))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Heap:", format.FormatBytes(m.stats.HeapAlloc), colWidth))
	rows.WriteString(formatMetricCol("Sys:", format.FormatBytes(m.stats.Sys), colWidth))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.stats.NumGC, float64(m.stats.PauseTotalNs)/1e6), colWidth))
	rows.WriteString(formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.stats.Goroutines), colWidth))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad using the rendered width so escape codes do not count.
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
