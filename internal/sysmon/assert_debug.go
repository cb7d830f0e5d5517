//go:build sysmon_debug

package sysmon

import "fmt"

// debugAssert panics when cond is false. Only compiled with the
// sysmon_debug build tag.
func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("sysmon: "+format, args...))
	}
}
