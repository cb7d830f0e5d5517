// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySample], [DisplaySummary], [DisplayQuietSummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSample], [FormatUsageJSON].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteUsageToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/agbru/cpumon/internal/format"
	"github.com/agbru/cpumon/internal/sysmon"
	"github.com/agbru/cpumon/internal/ui"
)

const (
	// TimestampLayout is used for the per-sample lines.
	TimestampLayout = "15:04:05"
	// notAvailable stands in for an absent reading.
	notAvailable = "n/a"
)

// Summary is the machine-readable end-of-run report.
type Summary struct {
	sysmon.UsageSnapshot
	Samples         int     `json:"samples"`
	Threshold       float64 `json:"threshold"`
	Overloaded      bool    `json:"overloaded"`
	SchedulingDelay bool    `json:"scheduling_delay"`
	ElapsedMs       int64   `json:"elapsed_ms"`
}

// NewSummary builds the report for h. Overloaded uses threshold instead of
// the fixed sampler threshold so users can tighten or relax it.
func NewSummary(h sysmon.History, threshold float64, elapsed time.Duration) Summary {
	delayed := h.HasSchedulingDelay()
	return Summary{
		UsageSnapshot:   sysmon.UsageFromHistory(h),
		Samples:         h.Len(),
		Threshold:       threshold,
		Overloaded:      h.IsCPUOverThreshold(sysmon.NewCPUUsage(threshold)) || delayed,
		SchedulingDelay: delayed,
		ElapsedMs:       elapsed.Milliseconds(),
	}
}

// FormatSample renders one sample as a single line:
//
//	12:00:05  cpu  45.3%  mem  7.8 GB
//
// CPU is colored by its level relative to threshold.
func FormatSample(s sysmon.SystemSample, threshold float64) string {
	cpu := fmt.Sprintf("%6s", notAvailable)
	if usage, ok := s.CPU(); ok {
		level := ui.ClassifyCPU(usage.Value(), threshold)
		cpu = fmt.Sprintf("%s%6s%s", ui.LevelColor(level), usage, ui.ColorReset())
	}
	mem := notAvailable
	if mb, ok := s.AvailableMemoryMB(); ok {
		mem = format.FormatMegabytes(mb)
	}
	return fmt.Sprintf("%s%s%s  cpu %s  mem %s",
		ui.ColorSecondary(), s.Timestamp().Format(TimestampLayout), ui.ColorReset(), cpu, mem)
}

// DisplaySample writes FormatSample(s) followed by a newline.
func DisplaySample(out io.Writer, s sysmon.SystemSample, threshold float64) {
	fmt.Fprintln(out, FormatSample(s, threshold))
}

// DisplaySummary writes the human-readable end-of-run report.
func DisplaySummary(out io.Writer, sum Summary) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s--- Summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(&b, "Elapsed:          %s\n", format.FormatExecutionDuration(time.Duration(sum.ElapsedMs)*time.Millisecond))
	fmt.Fprintf(&b, "Samples:          %d\n", sum.Samples)
	fmt.Fprintf(&b, "CPU history:      %s\n", sum.CPU)
	if sum.MemoryAvailableMB != nil {
		fmt.Fprintf(&b, "Memory available: %s\n", format.FormatMegabytes(*sum.MemoryAvailableMB))
	} else {
		fmt.Fprintf(&b, "Memory available: %s\n", notAvailable)
	}
	fmt.Fprintf(&b, "Processors:       %d\n", sum.ProcessorCount)

	switch {
	case sum.SchedulingDelay:
		fmt.Fprintf(&b, "Status:           %sOVERLOADED%s (sampler was delayed)\n", ui.ColorRed(), ui.ColorReset())
	case sum.Overloaded:
		fmt.Fprintf(&b, "Status:           %sOVERLOADED%s (cpu above %.1f%%)\n", ui.ColorRed(), ui.ColorReset(), sum.Threshold)
	default:
		fmt.Fprintf(&b, "Status:           %sOK%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	fmt.Fprint(out, b.String())
}

// DisplayQuietSummary writes only the CPU history line, for scripting.
func DisplayQuietSummary(out io.Writer, sum Summary) {
	fmt.Fprintln(out, sum.CPU)
}

// FormatUsageJSON encodes v as indented JSON.
func FormatUsageJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode usage: %w", err)
	}
	return string(b), nil
}

// WriteUsageToFile writes v as indented JSON to path, creating parent
// directories as needed. An empty path is a no-op.
func WriteUsageToFile(v any, path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	body, err := FormatUsageJSON(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
