package tui

import (
	"time"

	"github.com/agbru/cpumon/internal/metrics"
	"github.com/agbru/cpumon/internal/sysmon"
)

// TickMsg drives the display refresh.
type TickMsg time.Time

// SnapshotMsg carries the monitor history read on a tick.
type SnapshotMsg struct {
	History sysmon.History
}

// RuntimeMsg carries the dashboard process's own runtime statistics.
type RuntimeMsg metrics.RuntimeSnapshot

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err error
}
