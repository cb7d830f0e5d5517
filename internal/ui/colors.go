package ui

// Level classifies a CPU reading relative to the overload threshold.
type Level int

const (
	// LevelNormal is below WarnFraction of the threshold.
	LevelNormal Level = iota
	// LevelWarn is close to the threshold.
	LevelWarn
	// LevelOverloaded is above the threshold.
	LevelOverloaded
)

// WarnFraction of the threshold is where readings start to be highlighted.
const WarnFraction = 0.75

// ClassifyCPU returns the level of a CPU percentage for threshold.
func ClassifyCPU(percent, threshold float64) Level {
	switch {
	case percent > threshold:
		return LevelOverloaded
	case percent > threshold*WarnFraction:
		return LevelWarn
	default:
		return LevelNormal
	}
}

// LevelColor returns the escape code of the active theme for level.
func LevelColor(level Level) string {
	t := GetCurrentTheme()
	switch level {
	case LevelOverloaded:
		return t.Error
	case LevelWarn:
		return t.Warning
	default:
		return t.Success
	}
}

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorPrimary returns the accent color of the active theme.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the muted color of the active theme.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }
