// Package apperrors defines structured application error types and exit
// codes, allowing for a clear distinction between error classes
// (configuration, server, timeout) and for carrying the underlying cause.
//
// The sampling core in internal/sysmon never returns errors; these types
// only describe failures of the outer surfaces.
package apperrors
