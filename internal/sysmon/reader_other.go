//go:build !linux && !windows && !darwin

package sysmon

// No statistics source is wired for this platform. Both readers report
// absent values without counting failures.
const platformSupported = false

func readCPUTicks() (cpuTicks, error) { return cpuTicks{}, errUnsupportedPlatform }

func readAvailableMemory() (uint64, error) { return 0, errUnsupportedPlatform }
