//go:generate mockgen -source=reader.go -destination=mocks/mock_reader.go -package=mocks

package sysmon

import (
	"errors"
	"sync/atomic"

	"github.com/agbru/cpumon/internal/logging"
)

// MaxConsecutiveFailures is the number of consecutive failed reads after
// which a platform reader is disabled for the lifetime of the process.
// At the default 5s interval this is one minute of failures.
const MaxConsecutiveFailures = 12

const bytesPerMB = 1024 * 1024

var errUnsupportedPlatform = errors.New("sysmon: platform statistics not supported")

// Reader reads instantaneous system statistics. The sampler depends on this
// interface so tests can substitute canned readings.
type Reader interface {
	// ReadCPUUsage returns the system-wide CPU utilization in percent since
	// the previous call, or false when no reading is available.
	ReadCPUUsage() (float64, bool)
	// ReadAvailableMemoryMB returns the memory available to new
	// allocations in megabytes, or false when no reading is available.
	ReadAvailableMemoryMB() (uint64, bool)
}

// PlatformReader implements Reader with the process-wide readers for the
// current operating system.
type PlatformReader struct{}

// ReadCPUUsage implements Reader.
func (PlatformReader) ReadCPUUsage() (float64, bool) { return ReadCPUUsage() }

// ReadAvailableMemoryMB implements Reader.
func (PlatformReader) ReadAvailableMemoryMB() (uint64, bool) { return ReadAvailableMemoryMB() }

// Process-wide reader state. In production only the sampler goroutine calls
// these, so the previous-counter swaps never interleave. Concurrent callers
// would not race, but they would split the deltas between them.
var (
	cpuReader    = &cpuTracker{name: "cpu", read: readCPUTicks, supported: platformSupported}
	memoryReader = &memoryTracker{name: "memory", read: readAvailableMemory, supported: platformSupported}
)

// ReadCPUUsage returns the system-wide CPU utilization since the previous
// call. The first call of the process only primes the counters and
// returns false.
func ReadCPUUsage() (float64, bool) { return cpuReader.usage() }

// ReadAvailableMemoryMB returns the available system memory in megabytes.
func ReadAvailableMemoryMB() (uint64, bool) { return memoryReader.availableMB() }

// cpuTicks holds cumulative CPU time counters in platform units.
type cpuTicks struct {
	idle  uint64
	total uint64
}

// cpuTracker turns cumulative CPU counters into a utilization percentage
// and disables itself after repeated failures.
type cpuTracker struct {
	name      string
	read      func() (cpuTicks, error)
	supported bool

	prevIdle  atomic.Uint64
	prevTotal atomic.Uint64
	failures  atomic.Uint32
}

func (t *cpuTracker) usage() (float64, bool) {
	if !t.supported || t.failures.Load() >= MaxConsecutiveFailures {
		return 0, false
	}
	ticks, err := t.read()
	if err != nil {
		recordFailure(t.name, &t.failures, err)
		return 0, false
	}
	t.failures.Store(0)

	prevIdle := t.prevIdle.Swap(ticks.idle)
	prevTotal := t.prevTotal.Swap(ticks.total)
	if prevTotal == 0 {
		return 0, false
	}
	return busyPercent(prevIdle, prevTotal, ticks.idle, ticks.total)
}

// darwinAvailableBytes adds purgeable pages to the free + inactive byte
// count reported by the VM statistics.
func darwinAvailableBytes(reclaimable, purgeablePages, pageSize uint64) uint64 {
	return reclaimable + purgeablePages*pageSize
}

// busyPercent computes 100 × (1 − Δidle/Δtotal). It reports false when no
// time elapsed between the readings or the counters went backwards.
func busyPercent(prevIdle, prevTotal, idle, total uint64) (float64, bool) {
	if total <= prevTotal || idle < prevIdle {
		return 0, false
	}
	deltaTotal := total - prevTotal
	deltaIdle := idle - prevIdle
	if deltaIdle > deltaTotal {
		deltaIdle = deltaTotal
	}
	return 100 * (1 - float64(deltaIdle)/float64(deltaTotal)), true
}

// memoryTracker wraps an available-memory source with failure tracking.
type memoryTracker struct {
	name      string
	read      func() (uint64, error)
	supported bool

	failures atomic.Uint32
}

func (t *memoryTracker) availableMB() (uint64, bool) {
	if !t.supported || t.failures.Load() >= MaxConsecutiveFailures {
		return 0, false
	}
	bytes, err := t.read()
	if err != nil {
		recordFailure(t.name, &t.failures, err)
		return 0, false
	}
	t.failures.Store(0)
	return bytes / bytesPerMB, true
}

// recordFailure bumps a reader's failure counter and logs once when the
// reader crosses the disable threshold.
func recordFailure(name string, failures *atomic.Uint32, err error) {
	n := failures.Add(1)
	if n == MaxConsecutiveFailures {
		currentLogger().Warn("system statistics reader disabled", err,
			logging.String("reader", name),
			logging.Int("consecutive_failures", int(n)))
		return
	}
	currentLogger().Debug("system statistics read failed",
		logging.String("reader", name),
		logging.Err(err))
}
