// Package sysmon provides a process-wide, system-wide CPU and memory sampler.
//
// A single background goroutine per process reads platform statistics at a
// fixed refresh interval and keeps the most recent samples in a bounded
// history. Callers obtain a Monitor handle with GetOrInit; the sampler only
// does work while at least one handle is open, and idles otherwise. Handles
// expose immutable History snapshots from which health signals are derived:
// high CPU utilization and scheduling delay of the sampler itself.
//
// Readings that cannot be obtained are reported as absent, never as zero.
// A platform reader that fails MaxConsecutiveFailures times in a row is
// disabled for the lifetime of the process.
package sysmon
