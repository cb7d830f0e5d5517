package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry served on /metrics together with
// the server's own request metrics. Each Metrics owns its registry, so
// several servers can live in one process.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	handler        http.Handler
}

// NewMetrics creates a registry with Go runtime, process and request
// metrics, plus any extra collectors.
func NewMetrics(extra ...prometheus.Collector) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpumon_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cpumon_active_requests",
			Help: "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.activeRequests,
	)
	reg.MustRegister(extra...)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus writes all registered metrics in the Prometheus text
// exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks in-flight and total requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	counted := promhttp.InstrumentHandlerCounter(s.metrics.requestsTotal, next)
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		counted.ServeHTTP(w, r)
	}
}
