// Package metrics exports the sampler history to Prometheus and
// OpenTelemetry, and reads the monitor's own Go runtime statistics.
package metrics
