package sysmon

import (
	"cmp"
	"math"
	"strconv"
)

// CPUUsage is a CPU utilization percentage normalized to [0, 100].
//
// The stored value is canonical: NaN and every non-positive input
// (including -0 and -Inf) become +0, and values above 100 become 100.
// Two CPUUsage values are therefore == exactly when their numeric values
// are equal, and the type can be used directly as a map key.
type CPUUsage struct {
	value float64
}

// NewCPUUsage normalizes raw into a CPUUsage. It never fails.
func NewCPUUsage(raw float64) CPUUsage {
	var v float64
	switch {
	case math.IsNaN(raw), raw <= 0:
		v = 0
	case raw > 100:
		v = 100
	default:
		v = raw
	}
	debugAssert(v >= 0 && v <= 100 && !math.Signbit(v), "normalized cpu usage %v out of range", v)
	return CPUUsage{value: v}
}

// Value returns the percentage in [0, 100].
func (c CPUUsage) Value() float64 { return c.value }

// Compare returns -1, 0 or +1 depending on whether c is less than, equal
// to, or greater than other.
func (c CPUUsage) Compare(other CPUUsage) int { return cmp.Compare(c.value, other.value) }

// Less reports whether c is lower than other.
func (c CPUUsage) Less(other CPUUsage) bool { return c.value < other.value }

// Bits returns the IEEE-754 bit pattern of the normalized value.
// Equal usages always have equal bits.
func (c CPUUsage) Bits() uint64 { return math.Float64bits(c.value) }

// String formats the usage with one decimal, e.g. "42.5%".
func (c CPUUsage) String() string {
	return strconv.FormatFloat(c.value, 'f', 1, 64) + "%"
}

// MarshalJSON encodes the usage as a bare number.
func (c CPUUsage) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, c.value, 'f', -1, 64), nil
}
