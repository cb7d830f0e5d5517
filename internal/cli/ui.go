//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is the animation frame interval of the spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner abstracts a terminal spinner so the priming wait can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// StartPrimingSpinner shows a spinner on out while the sampler collects
// its first readings. The caller must Stop it.
func StartPrimingSpinner(out io.Writer, interval time.Duration) Spinner {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" collecting first samples (every " + interval.String() + ")")
	s.Start()
	return s
}
