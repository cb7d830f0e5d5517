//go:build windows

package sysmon

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const platformSupported = true

var (
	modkernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemTimes       = modkernel32.NewProc("GetSystemTimes")
	procGlobalMemoryStatusEx = modkernel32.NewProc("GlobalMemoryStatusEx")
)

// memoryStatusEx mirrors MEMORYSTATUSEX. x/sys/windows does not export it.
type memoryStatusEx struct {
	Length               uint32
	MemoryLoad           uint32
	TotalPhys            uint64
	AvailPhys            uint64
	TotalPageFile        uint64
	AvailPageFile        uint64
	TotalVirtual         uint64
	AvailVirtual         uint64
	AvailExtendedVirtual uint64
}

// readCPUTicks queries GetSystemTimes. Kernel time includes idle time, so
// total = kernel + user and busy = total - idle. Units are 100ns.
func readCPUTicks() (cpuTicks, error) {
	var idle, kernel, user windows.Filetime
	r1, _, callErr := procGetSystemTimes.Call(
		uintptr(unsafe.Pointer(&idle)),
		uintptr(unsafe.Pointer(&kernel)),
		uintptr(unsafe.Pointer(&user)),
	)
	if r1 == 0 {
		return cpuTicks{}, fmt.Errorf("GetSystemTimes: %w", callErr)
	}
	return cpuTicks{
		idle:  filetimeTicks(idle),
		total: filetimeTicks(kernel) + filetimeTicks(user),
	}, nil
}

// readAvailableMemory returns the available physical memory in bytes.
func readAvailableMemory() (uint64, error) {
	var status memoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))
	r1, _, callErr := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&status)))
	if r1 == 0 {
		return 0, fmt.Errorf("GlobalMemoryStatusEx: %w", callErr)
	}
	return status.AvailPhys, nil
}

func filetimeTicks(ft windows.Filetime) uint64 {
	return uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime)
}
