package metrics

import "runtime"

// RuntimeSnapshot holds a point-in-time reading of the monitor's own Go
// runtime, shown next to the system figures.
type RuntimeSnapshot struct {
	HeapAlloc    uint64 // bytes in use by the process
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	Goroutines   int
}

// RuntimeCollector reads runtime memory statistics.
type RuntimeCollector struct{}

// NewRuntimeCollector creates a new runtime collector.
func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{}
}

// Snapshot reads current runtime statistics. ReadMemStats stops the world
// briefly; call it at display rate, not per sample.
func (rc *RuntimeCollector) Snapshot() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		Goroutines:   runtime.NumGoroutine(),
	}
}
