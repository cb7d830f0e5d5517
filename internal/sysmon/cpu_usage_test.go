package sysmon

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNewCPUUsage_Normalization(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"NaN", math.NaN(), 0},
		{"negative zero", math.Copysign(0, -1), 0},
		{"zero", 0, 0},
		{"negative", -12.5, 0},
		{"negative infinity", math.Inf(-1), 0},
		{"in range", 42.5, 42.5},
		{"upper bound", 100, 100},
		{"above range", 150, 100},
		{"positive infinity", math.Inf(1), 100},
		{"smallest positive", math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewCPUUsage(tt.raw).Value()
			if got != tt.want {
				t.Errorf("NewCPUUsage(%v).Value() = %v, want %v", tt.raw, got, tt.want)
			}
			if math.Signbit(got) {
				t.Errorf("NewCPUUsage(%v) kept the sign bit", tt.raw)
			}
		})
	}
}

func TestCPUUsage_NegativeZeroIsCanonical(t *testing.T) {
	t.Parallel()
	negZero := NewCPUUsage(math.Copysign(0, -1))
	posZero := NewCPUUsage(0)

	if negZero.Bits() != math.Float64bits(0) {
		t.Errorf("Bits() = %#x, want %#x", negZero.Bits(), math.Float64bits(0))
	}
	if negZero != posZero {
		t.Error("-0 and +0 should normalize to equal values")
	}

	seen := map[CPUUsage]int{negZero: 1}
	seen[posZero]++
	if len(seen) != 1 || seen[posZero] != 2 {
		t.Errorf("expected one map key for -0 and +0, got %v", seen)
	}
}

func TestCPUUsage_Ordering(t *testing.T) {
	t.Parallel()
	low, high := NewCPUUsage(10), NewCPUUsage(20)

	if !low.Less(high) || high.Less(low) {
		t.Error("10% should be less than 20%")
	}
	if low.Compare(high) != -1 || high.Compare(low) != 1 || low.Compare(NewCPUUsage(10)) != 0 {
		t.Error("Compare is inconsistent with numeric order")
	}
	if NewCPUUsage(math.NaN()).Compare(NewCPUUsage(0)) != 0 {
		t.Error("NaN should compare equal to 0 after normalization")
	}
}

func TestCPUUsage_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  float64
		want string
	}{
		{42.5, "42.5%"},
		{0, "0.0%"},
		{100, "100.0%"},
		{33.333, "33.3%"},
		{250, "100.0%"},
	}
	for _, tt := range tests {
		if got := NewCPUUsage(tt.raw).String(); got != tt.want {
			t.Errorf("NewCPUUsage(%v).String() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCPUUsage_MarshalJSON(t *testing.T) {
	t.Parallel()
	b, err := NewCPUUsage(42.5).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != "42.5" {
		t.Errorf("MarshalJSON() = %s, want 42.5", b)
	}
}

// TestCPUUsage_PropertyBased checks the normalization contract over random
// inputs in each of the three input ranges.
func TestCPUUsage_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("values in [0,100] are preserved", prop.ForAll(
		func(x float64) bool {
			return NewCPUUsage(x).Value() == x
		},
		gen.Float64Range(0, 100),
	))

	properties.Property("negative values become zero", prop.ForAll(
		func(x float64) bool {
			v := NewCPUUsage(-x).Value()
			return v == 0 && !math.Signbit(v)
		},
		gen.Float64Range(0, math.MaxFloat64),
	))

	properties.Property("values above 100 clamp to 100", prop.ForAll(
		func(x float64) bool {
			return NewCPUUsage(100+x).Value() == 100
		},
		gen.Float64Range(1e-9, 1e12),
	))

	properties.Property("order matches numeric order", prop.ForAll(
		func(a, b float64) bool {
			ua, ub := NewCPUUsage(a), NewCPUUsage(b)
			return ua.Less(ub) == (ua.Value() < ub.Value()) &&
				(ua == ub) == (ua.Bits() == ub.Bits())
		},
		gen.Float64Range(-50, 150),
		gen.Float64Range(-50, 150),
	))

	properties.TestingRun(t)
}
