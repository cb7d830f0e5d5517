package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/cpumon/internal/logging"
)

// TestNewMetrics tests the Metrics constructor.
func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}

	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}

	// Each Metrics owns a registry, so a second one must not panic on
	// duplicate registration.
	_ = NewMetrics()
}

// TestMetrics_IncrementDecrementActiveRequests tests the active requests gauge.
func TestMetrics_IncrementDecrementActiveRequests(t *testing.T) {
	m := NewMetrics()

	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	if got := testutil.ToFloat64(m.activeRequests); got != 2 {
		t.Errorf("active requests = %v, want 2", got)
	}

	m.DecrementActiveRequests()
	if got := testutil.ToFloat64(m.activeRequests); got != 1 {
		t.Errorf("active requests = %v, want 1", got)
	}
}

// TestMetrics_WritePrometheus tests the Prometheus metrics endpoint.
func TestMetrics_WritePrometheus(t *testing.T) {
	s := &Server{metrics: NewMetrics()}

	// Serve one request so the request counter has a child.
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	s.metricsMiddleware(ok)(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", http.NoBody))

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	s.metrics.WritePrometheus(rec, req)

	body := rec.Body.String()

	t.Run("Contains active requests metric", func(t *testing.T) {
		if !strings.Contains(body, "cpumon_active_requests") {
			t.Error("metrics output should contain cpumon_active_requests")
		}
	})

	t.Run("Contains total requests metric", func(t *testing.T) {
		if !strings.Contains(body, `cpumon_requests_total{code="200",method="get"} 1`) {
			t.Errorf("metrics output should count the request, got:\n%s", body)
		}
	})

	t.Run("Contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}

// TestServer_metricsMiddleware tests the metrics tracking middleware.
func TestServer_metricsMiddleware(t *testing.T) {
	t.Run("Next handler is called", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
		}

		nextCalled := false
		next := func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		}

		handler := s.metricsMiddleware(next)
		req := httptest.NewRequest("GET", "/test", http.NoBody)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if !nextCalled {
			t.Error("next handler was not called")
		}
	})

	t.Run("Active requests tracked during the request", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
		}

		var during float64
		next := func(w http.ResponseWriter, r *http.Request) {
			during = testutil.ToFloat64(s.metrics.activeRequests)
			w.WriteHeader(http.StatusTeapot)
		}

		handler := s.metricsMiddleware(next)
		req := httptest.NewRequest("GET", "/test", http.NoBody)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if during != 1 {
			t.Errorf("active requests during request = %v, want 1", during)
		}
		if after := testutil.ToFloat64(s.metrics.activeRequests); after != 0 {
			t.Errorf("active requests after request = %v, want 0", after)
		}
		if got := testutil.ToFloat64(s.metrics.requestsTotal.WithLabelValues("get", "418")); got != 1 {
			t.Errorf("requests_total{code=418} = %v, want 1", got)
		}
	})
}

// TestServer_handleMetrics tests the /metrics endpoint handler.
func TestServer_handleMetrics(t *testing.T) {
	t.Run("GET returns metrics", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
		}

		req := httptest.NewRequest("GET", "/metrics", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleMetrics(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "cpumon_") {
			t.Error("response should contain cpumon metrics")
		}
	})

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		t.Run(method+" returns method not allowed", func(t *testing.T) {
			s := &Server{
				metrics: NewMetrics(),
				logger:  newTestLogger(),
			}

			req := httptest.NewRequest(method, "/metrics", http.NoBody)
			rec := httptest.NewRecorder()

			s.handleMetrics(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
			}
			if rec.Header().Get("Allow") == "" {
				t.Error("405 response should carry an Allow header")
			}
		})
	}
}

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Warn(_ string, _ error, _ ...logging.Field)  {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}
