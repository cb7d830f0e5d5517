package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"X-XSS-Protection":        "1; mode=block",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

func serve(t *testing.T, s *Server, method, path, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_PreflightOnEveryRoute(t *testing.T) {
	t.Parallel()
	s := New("127.0.0.1:0", calmSource(), newTestLogger())

	for _, path := range []string{"/healthz", "/snapshot", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			rec := serve(t, s, http.MethodOptions, path, "https://dashboard.example")

			if rec.Code != http.StatusNoContent {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("preflight body = %q, want empty", rec.Body.String())
			}
			want := map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Max-Age":       "86400",
			}
			for k, v := range want {
				if got := rec.Header().Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			if rec.Header().Get("Vary") != "" {
				t.Errorf("wildcard CORS should not vary on Origin, got Vary %q", rec.Header().Get("Vary"))
			}
		})
	}
}

func TestServer_SecurityHeadersOnErrorResponses(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      staticSource
		method   string
		path     string
		wantCode int
	}{
		{"write to healthz", calmSource(), http.MethodPost, "/healthz", http.StatusMethodNotAllowed},
		{"write to snapshot", calmSource(), http.MethodPost, "/snapshot", http.StatusMethodNotAllowed},
		{"delete metrics", calmSource(), http.MethodDelete, "/metrics", http.StatusMethodNotAllowed},
		{"overloaded healthz", busySource(), http.MethodGet, "/healthz", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New("127.0.0.1:0", tt.src, newTestLogger())
			rec := serve(t, s, tt.method, tt.path, "")

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			for k, v := range securityHeaders {
				if got := rec.Header().Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			if tt.wantCode == http.StatusMethodNotAllowed && rec.Header().Get("Allow") == "" {
				t.Error("405 response is missing the Allow header")
			}
		})
	}
}

func TestServer_RestrictedOrigins(t *testing.T) {
	t.Parallel()
	cfg := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"https://ops.example"},
		AllowedMethods: []string{http.MethodGet},
	}
	s := New("127.0.0.1:0", calmSource(), newTestLogger(), WithSecurityConfig(cfg))

	t.Run("allowed origin is echoed", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, s, http.MethodGet, "/snapshot", "https://ops.example")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
			t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET" {
			t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "GET")
		}
		if got := rec.Header().Get("Vary"); got != "Origin" {
			t.Errorf("Vary = %q, want Origin", got)
		}
	})

	t.Run("other origin gets no CORS headers", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, s, http.MethodGet, "/healthz", "https://evil.example")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want none", got)
		}
		if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
			t.Errorf("X-Frame-Options = %q, want DENY", got)
		}
	})
}

func TestServer_CORSDisabled(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	cfg.EnableCORS = false
	s := New("127.0.0.1:0", calmSource(), newTestLogger(), WithSecurityConfig(cfg))

	rec := serve(t, s, http.MethodOptions, "/metrics", "https://dashboard.example")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q with CORS disabled", got)
	}
}

func TestAllowedOrigin(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
		wantOK  bool
	}{
		{"wildcard without origin", []string{"*"}, "", "*", true},
		{"wildcard with origin", []string{"*"}, "https://a.example", "*", true},
		{"listed origin", []string{"https://a.example", "https://b.example"}, "https://b.example", "https://b.example", true},
		{"unlisted origin", []string{"https://a.example"}, "https://c.example", "", false},
		{"missing origin", []string{"https://a.example"}, "", "", false},
		{"empty allow list", nil, "https://a.example", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := allowedOrigin(tt.allowed, tt.origin)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("allowedOrigin(%v, %q) = (%q, %v), want (%q, %v)",
					tt.allowed, tt.origin, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
