package sysmon

import (
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"github.com/agbru/cpumon/internal/logging"
)

// engine is the shared sampling state behind every Monitor handle: the
// bounded sample history, the listener count and the refresh interval.
type engine struct {
	mu      sync.RWMutex
	samples *sampleBuffer

	listeners atomic.Int64
	started   atomic.Bool

	interval time.Duration
	reader   Reader
	now      func() time.Time
	logger   logging.Logger
}

func newEngine(interval time.Duration, reader Reader, logger logging.Logger) *engine {
	return &engine{
		samples:  newSampleBuffer(DefaultHistoryLength),
		interval: interval,
		reader:   reader,
		now:      time.Now,
		logger:   logger,
	}
}

// register adds one listener.
func (e *engine) register() {
	e.listeners.Add(1)
}

// unregister removes one listener, saturating at zero.
func (e *engine) unregister() {
	for {
		n := e.listeners.Load()
		if n <= 0 {
			return
		}
		if e.listeners.CompareAndSwap(n, n-1) {
			return
		}
	}
}

func (e *engine) hasListeners() bool {
	return e.listeners.Load() > 0
}

// refresh takes one combined sample and appends it to the history. The
// platform reads happen outside the lock.
func (e *engine) refresh() {
	ts := e.now()
	var opts []SampleOption
	if usage, ok := e.reader.ReadCPUUsage(); ok {
		opts = append(opts, WithCPU(NewCPUUsage(usage)))
	}
	if mb, ok := e.reader.ReadAvailableMemoryMB(); ok {
		opts = append(opts, WithAvailableMemoryMB(mb))
	}
	sample := NewSystemSample(ts, opts...)

	e.mu.Lock()
	e.samples.push(sample)
	e.mu.Unlock()
}

// snapshot returns an immutable copy of the current history.
func (e *engine) snapshot() History {
	e.mu.RLock()
	samples := e.samples.snapshot()
	e.mu.RUnlock()
	return History{samples: samples, refreshInterval: e.interval}
}

// start launches the sampling goroutine. It is a no-op after the first call.
func (e *engine) start() {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	ticker := time.NewTicker(e.interval)
	ref := weak.Make(e)
	e.logger.Debug("sampler started", logging.Duration("interval", e.interval))
	go func() {
		defer ticker.Stop()
		sampleLoop(ref, ticker.C)
	}()
}

// sampleLoop samples on every tick while the engine is alive. It holds the
// engine only through a weak pointer so that the goroutine alone never
// keeps it reachable. It returns when ticks is closed or the engine has
// been collected.
func sampleLoop(ref weak.Pointer[engine], ticks <-chan time.Time) {
	for range ticks {
		if !sampleOnce(ref) {
			return
		}
	}
}

// sampleOnce performs one cycle and reports whether the engine still exists.
func sampleOnce(ref weak.Pointer[engine]) bool {
	e := ref.Value()
	if e == nil {
		return false
	}
	if e.hasListeners() {
		e.refresh()
	}
	return true
}
