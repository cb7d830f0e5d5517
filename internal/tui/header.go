package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cpumon/internal/format"
)

// HeaderModel renders the top bar: title, version, sampling interval and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	now       time.Time
	version   string
	interval  time.Duration
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, interval time.Duration) HeaderModel {
	start := time.Now()
	return HeaderModel{
		startTime: start,
		now:       start,
		version:   version,
		interval:  interval,
	}
}

// SetNow advances the elapsed clock. The header does not read the wall
// clock itself so that views are deterministic.
func (h *HeaderModel) SetNow(t time.Time) {
	h.now = t
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "cpumon"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")

	every := versionStyle.Render(fmt.Sprintf("every %s", h.interval))
	elapsed := elapsedStyle.Render("Elapsed: " + format.FormatElapsed(h.now.Sub(h.startTime)))

	row := title + pipe + every + pipe + elapsed
	innerWidth := max(h.width-2, 0)
	if gap := innerWidth - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}
