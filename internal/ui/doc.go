// Package ui provides themes and color helpers shared by the line-oriented
// CLI output and the TUI dashboard, including the classification of CPU
// readings into normal, warning and overloaded levels.
package ui
