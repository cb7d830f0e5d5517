// Package logging provides the structured logging interface used across cpumon.
// It hides zerolog behind a small Logger interface so that the sampler,
// the HTTP server and the CLI log the same way, and tests can swap in a
// silent implementation.
package logging
