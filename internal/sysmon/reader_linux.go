//go:build linux

package sysmon

import (
	"fmt"
	"math"
	"sync"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

const platformSupported = true

// userHZ is the kernel's USER_HZ; procfs reports /proc/stat counters in
// seconds, divided by this value.
const userHZ = 100

var defaultProcFS = sync.OnceValues(func() (procfs.FS, error) {
	return procfs.NewDefaultFS()
})

func readCPUTicks() (cpuTicks, error) {
	fs, err := defaultProcFS()
	if err != nil {
		return cpuTicks{}, err
	}
	return procCPUTicks(fs)
}

func readAvailableMemory() (uint64, error) {
	fs, err := defaultProcFS()
	if err != nil {
		return 0, err
	}
	return procAvailableMemory(fs, sysinfoAvailableMemory)
}

// procCPUTicks reads the aggregate "cpu" line of /proc/stat.
// idle = idle + iowait; total adds user, nice, system, irq, softirq and
// steal. guest time is already accounted in user and nice.
func procCPUTicks(fs procfs.FS) (cpuTicks, error) {
	stat, err := fs.Stat()
	if err != nil {
		return cpuTicks{}, fmt.Errorf("read /proc/stat: %w", err)
	}
	c := stat.CPUTotal
	idle := c.Idle + c.Iowait
	total := c.User + c.Nice + c.System + idle + c.IRQ + c.SoftIRQ + c.Steal
	return cpuTicks{idle: secondsToTicks(idle), total: secondsToTicks(total)}, nil
}

// procAvailableMemory returns MemAvailable from /proc/meminfo in bytes.
// Kernels older than 3.14 do not report MemAvailable; fallback is used
// for them.
func procAvailableMemory(fs procfs.FS, fallback func() (uint64, error)) (uint64, error) {
	info, err := fs.Meminfo()
	if err != nil {
		return 0, fmt.Errorf("read /proc/meminfo: %w", err)
	}
	if info.MemAvailable == nil {
		return fallback()
	}
	return *info.MemAvailable * 1024, nil
}

func sysinfoAvailableMemory() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}
	unit := uint64(info.Unit)
	return (uint64(info.Freeram) + uint64(info.Bufferram)) * unit, nil
}

func secondsToTicks(seconds float64) uint64 {
	return uint64(math.Round(seconds * userHZ))
}
