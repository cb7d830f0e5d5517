package tui

import (
	"github.com/charmbracelet/bubbles/help"
)

// FooterModel renders the key help and the run state.
type FooterModel struct {
	help   help.Model
	keys   KeyMap
	paused bool
	width  int
}

// NewFooterModel creates a footer for keys.
func NewFooterModel(keys KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = metricValueStyle
	h.Styles.ShortDesc = metricLabelStyle
	h.Styles.FullKey = metricValueStyle
	h.Styles.FullDesc = metricLabelStyle
	return FooterModel{help: h, keys: keys}
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// ToggleHelp switches between the short and full key help.
func (f *FooterModel) ToggleHelp() {
	f.help.ShowAll = !f.help.ShowAll
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// View renders the footer.
func (f FooterModel) View() string {
	state := statusRunningStyle.Render(" LIVE ")
	if f.paused {
		state = statusPausedStyle.Render(" PAUSED ")
	}
	return state + " " + f.help.View(f.keys)
}
