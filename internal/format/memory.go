package format

import "fmt"

// FormatMegabytes renders a megabyte count with a binary unit, switching
// to GB (one decimal) from 1024 MB upward.
func FormatMegabytes(mb uint64) string {
	if mb < 1024 {
		return fmt.Sprintf("%d MB", mb)
	}
	return fmt.Sprintf("%.1f GB", float64(mb)/1024)
}

// FormatBytes renders a byte count with the largest binary unit that keeps
// the value at or above one.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
