// Package server exposes the sampler over HTTP: Prometheus metrics on
// /metrics, a load-balancer health check on /healthz and the raw history
// as JSON on /snapshot. Only GET and HEAD are served.
package server
