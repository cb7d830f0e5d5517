// Package format provides pure string formatting helpers for durations and
// memory sizes, shared by the CLI and the TUI.
package format
