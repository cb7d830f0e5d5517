package sysmon

import (
	"slices"
	"strings"
	"time"
)

const (
	// OverloadThreshold is the CPU utilization above which a single sample
	// marks the history as overloaded.
	OverloadThreshold = 90.0

	// schedulingDelayFactor is how many refresh intervals may separate two
	// consecutive samples before the sampler is considered starved.
	schedulingDelayFactor = 1.5
)

// History is an immutable point-in-time copy of the sampler's recent
// samples, oldest first, together with the refresh interval they were
// taken at.
type History struct {
	samples         []SystemSample
	refreshInterval time.Duration
}

// NewHistory builds a History from a copy of samples.
func NewHistory(samples []SystemSample, refreshInterval time.Duration) History {
	return History{samples: slices.Clone(samples), refreshInterval: refreshInterval}
}

// Samples returns a copy of the samples, oldest first.
func (h History) Samples() []SystemSample { return slices.Clone(h.samples) }

// Len returns the number of samples.
func (h History) Len() int { return len(h.samples) }

// RefreshInterval returns the sampler interval at snapshot time.
func (h History) RefreshInterval() time.Duration { return h.refreshInterval }

// IsCPUOverThreshold reports whether any sample with a CPU reading exceeds
// threshold.
func (h History) IsCPUOverThreshold(threshold CPUUsage) bool {
	for _, s := range h.samples {
		if usage, ok := s.CPU(); ok && threshold.Less(usage) {
			return true
		}
	}
	return false
}

// IsCPUOverloaded reports whether the CPU went above OverloadThreshold or
// the sampler itself was delayed.
func (h History) IsCPUOverloaded() bool {
	return h.IsCPUOverThreshold(NewCPUUsage(OverloadThreshold)) || h.HasSchedulingDelay()
}

// HasSchedulingDelay reports whether two adjacent samples are more than
// 1.5 refresh intervals apart, meaning the sampling goroutine did not get
// to run on time.
func (h History) HasSchedulingDelay() bool {
	limit := time.Duration(float64(h.refreshInterval) * schedulingDelayFactor)
	for i := 1; i < len(h.samples); i++ {
		if h.samples[i].Timestamp().Sub(h.samples[i-1].Timestamp()) > limit {
			return true
		}
	}
	return false
}

// LatestCPU returns the CPU reading of the newest sample.
func (h History) LatestCPU() (CPUUsage, bool) {
	if len(h.samples) == 0 {
		return CPUUsage{}, false
	}
	return h.samples[len(h.samples)-1].CPU()
}

// LatestMemoryMB returns the available-memory reading of the newest sample.
func (h History) LatestMemoryMB() (uint64, bool) {
	if len(h.samples) == 0 {
		return 0, false
	}
	return h.samples[len(h.samples)-1].AvailableMemoryMB()
}

// String lists the CPU readings as "(45.3%), (50.1%)", or "empty" when no
// sample has one.
func (h History) String() string {
	var b strings.Builder
	for _, s := range h.samples {
		usage, ok := s.CPU()
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(usage.String())
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "empty"
	}
	return b.String()
}
