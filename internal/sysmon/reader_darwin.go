//go:build darwin

package sysmon

import (
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sys/unix"
)

const platformSupported = true

// clockTicks is CLK_TCK on darwin; gopsutil reports host tick counters in
// seconds divided by this value.
const clockTicks = 100

// readCPUTicks reads the aggregate host CPU load counters
// (host_statistics HOST_CPU_LOAD_INFO). busy = user + system + nice.
func readCPUTicks() (cpuTicks, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return cpuTicks{}, fmt.Errorf("host cpu load info: %w", err)
	}
	if len(times) == 0 {
		return cpuTicks{}, errors.New("host cpu load info: no data")
	}
	t := times[0]
	busy := toTicks(t.User) + toTicks(t.System) + toTicks(t.Nice)
	idle := toTicks(t.Idle)
	return cpuTicks{idle: idle, total: busy + idle}, nil
}

// readAvailableMemory returns free + inactive + purgeable pages in bytes.
// gopsutil's Available covers free + inactive (HOST_VM_INFO64); purgeable
// pages come from the vm.page_purgeable_count sysctl.
func readAvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("host vm info: %w", err)
	}
	purgeable, err := unix.SysctlUint32("vm.page_purgeable_count")
	if err != nil {
		return 0, fmt.Errorf("sysctl vm.page_purgeable_count: %w", err)
	}
	return darwinAvailableBytes(vm.Available, uint64(purgeable), uint64(unix.Getpagesize())), nil
}

func toTicks(seconds float64) uint64 {
	return uint64(math.Round(seconds * clockTicks))
}
