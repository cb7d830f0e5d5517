package sysmon

import "runtime"

// UsageSnapshot is a compact, serializable summary of system usage meant to
// be attached to diagnostics output.
type UsageSnapshot struct {
	// CPU is the recent CPU history formatted as "(45.3%), (50.1%)".
	CPU string `json:"cpu"`
	// MemoryAvailableMB is the newest available-memory reading, if any.
	MemoryAvailableMB *uint64 `json:"memory_available_mb,omitempty"`
	// ProcessorCount is the number of logical CPUs the process may use.
	ProcessorCount int `json:"processor_count"`
}

// CaptureUsage summarizes the current history of m.
func CaptureUsage(m *Monitor) UsageSnapshot {
	return UsageFromHistory(m.Snapshot())
}

// UsageFromHistory summarizes h.
func UsageFromHistory(h History) UsageSnapshot {
	u := UsageSnapshot{
		CPU:            h.String(),
		ProcessorCount: runtime.GOMAXPROCS(0),
	}
	if mb, ok := h.LatestMemoryMB(); ok {
		u.MemoryAvailableMB = &mb
	}
	return u
}
