package sysmon

import (
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agbru/cpumon/internal/logging"
)

// DefaultRefreshInterval is the sampling interval used when GetOrInit is
// given a non-positive interval.
const DefaultRefreshInterval = 5 * time.Second

var (
	singletonOnce sync.Once
	singleton     *engine
)

// Monitor is a handle to the process-wide sampler. While at least one
// handle is open the sampler records a sample every refresh interval.
// Handles are safe for concurrent use.
type Monitor struct {
	engine  *engine
	cleanup runtime.Cleanup
	closed  atomic.Bool
}

// GetOrInit returns a new handle to the process-wide sampler, creating the
// sampler and starting its goroutine on the first call.
//
// The refresh interval is fixed by the first call. A later call with a
// different interval keeps the original one and logs a warning; builds
// with the sysmon_debug tag panic instead.
func GetOrInit(refreshInterval time.Duration) *Monitor {
	if refreshInterval <= 0 {
		refreshInterval = DefaultRefreshInterval
	}
	singletonOnce.Do(func() {
		singleton = newEngine(refreshInterval, PlatformReader{}, currentLogger())
		singleton.start()
	})
	if refreshInterval != singleton.interval {
		debugAssert(false, "GetOrInit called with interval %s, sampler already runs at %s",
			refreshInterval, singleton.interval)
		currentLogger().Warn("ignoring requested refresh interval; sampler already running", nil,
			logging.Duration("requested", refreshInterval),
			logging.Duration("interval", singleton.interval))
	}
	return newMonitor(singleton)
}

// newMonitor registers a listener on e and returns a handle for it. A
// handle that becomes unreachable without Close unregisters itself.
func newMonitor(e *engine) *Monitor {
	e.register()
	m := &Monitor{engine: e}
	m.cleanup = runtime.AddCleanup(m, (*engine).unregister, e)
	return m
}

// Clone returns an additional handle to the same sampler.
func (m *Monitor) Clone() *Monitor {
	return newMonitor(m.engine)
}

// Close releases the handle. When the last handle is closed the sampler
// idles until a new handle is obtained. Close is idempotent and always
// returns nil.
func (m *Monitor) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.cleanup.Stop()
		m.engine.unregister()
	}
	return nil
}

// Snapshot returns the current sample history.
func (m *Monitor) Snapshot() History {
	return m.engine.snapshot()
}

// IsCPUOverloaded reports whether the current history shows overload.
func (m *Monitor) IsCPUOverloaded() bool {
	return m.Snapshot().IsCPUOverloaded()
}

// RefreshInterval returns the interval the sampler runs at.
func (m *Monitor) RefreshInterval() time.Duration {
	return m.engine.interval
}

type loggerBox struct{ logging.Logger }

var (
	pkgLogger     atomic.Pointer[loggerBox]
	defaultLogger = logging.NewLogger(os.Stderr, "sysmon")
)

// SetLogger replaces the logger used by the sampler and the platform
// readers. A nil logger restores the default stderr logger.
func SetLogger(l logging.Logger) {
	if l == nil {
		pkgLogger.Store(nil)
		return
	}
	pkgLogger.Store(&loggerBox{l})
}

func currentLogger() logging.Logger {
	if b := pkgLogger.Load(); b != nil {
		return b.Logger
	}
	return defaultLogger
}
