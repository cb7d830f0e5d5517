package sysmon

import "time"

// SystemSample is one timestamped reading of CPU utilization and available
// memory. Either reading may be absent: on the first sample after start-up
// (no previous counters to diff against), after a platform read failure,
// or once a reader has been disabled. Absent readings mean "unknown", not
// zero.
type SystemSample struct {
	timestamp time.Time
	cpu       CPUUsage
	hasCPU    bool
	memoryMB  uint64
	hasMemory bool
}

// SampleOption sets an optional reading on a SystemSample.
type SampleOption func(*SystemSample)

// WithCPU attaches a CPU reading.
func WithCPU(usage CPUUsage) SampleOption {
	return func(s *SystemSample) {
		s.cpu = usage
		s.hasCPU = true
	}
}

// WithAvailableMemoryMB attaches an available-memory reading in megabytes.
func WithAvailableMemoryMB(mb uint64) SampleOption {
	return func(s *SystemSample) {
		s.memoryMB = mb
		s.hasMemory = true
	}
}

// NewSystemSample builds a sample taken at ts.
func NewSystemSample(ts time.Time, opts ...SampleOption) SystemSample {
	s := SystemSample{timestamp: ts}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Timestamp returns when the sample was taken. Samples produced by the
// sampler carry a monotonic clock reading.
func (s SystemSample) Timestamp() time.Time { return s.timestamp }

// CPU returns the CPU reading and whether it is present.
func (s SystemSample) CPU() (CPUUsage, bool) { return s.cpu, s.hasCPU }

// AvailableMemoryMB returns the available memory in megabytes and whether
// it is present.
func (s SystemSample) AvailableMemoryMB() (uint64, bool) { return s.memoryMB, s.hasMemory }
