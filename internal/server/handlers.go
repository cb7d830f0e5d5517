package server

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/agbru/cpumon/internal/logging"
	"github.com/agbru/cpumon/internal/sysmon"
)

// SampleJSON is the wire form of one sample. Absent readings are omitted.
type SampleJSON struct {
	Timestamp         time.Time        `json:"timestamp"`
	CPU               *sysmon.CPUUsage `json:"cpu_percent,omitempty"`
	MemoryAvailableMB *uint64          `json:"memory_available_mb,omitempty"`
}

// SnapshotResponse is the body of GET /snapshot.
type SnapshotResponse struct {
	Samples           []SampleJSON         `json:"samples"`
	RefreshIntervalMs int64                `json:"refresh_interval_ms"`
	Overloaded        bool                 `json:"overloaded"`
	SchedulingDelay   bool                 `json:"scheduling_delay"`
	Usage             sysmon.UsageSnapshot `json:"usage"`
}

// NewSnapshotResponse converts a history into its wire form.
func NewSnapshotResponse(h sysmon.History) SnapshotResponse {
	samples := h.Samples()
	resp := SnapshotResponse{
		Samples:           make([]SampleJSON, 0, len(samples)),
		RefreshIntervalMs: h.RefreshInterval().Milliseconds(),
		Overloaded:        h.IsCPUOverloaded(),
		SchedulingDelay:   h.HasSchedulingDelay(),
		Usage:             sysmon.UsageFromHistory(h),
	}
	for _, s := range samples {
		sj := SampleJSON{Timestamp: s.Timestamp()}
		if usage, ok := s.CPU(); ok {
			sj.CPU = &usage
		}
		if mb, ok := s.AvailableMemoryMB(); ok {
			sj.MemoryAvailableMB = &mb
		}
		resp.Samples = append(resp.Samples, sj)
	}
	return resp
}

// requireGet rejects anything but GET and HEAD with 405.
func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	s.logger.Debug("rejected request",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path))
	return false
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth answers 503 while the history shows overload so load
// balancers can shed traffic from a starved host.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if s.source.Snapshot().IsCPUOverloaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	body, err := json.Marshal(NewSnapshotResponse(s.source.Snapshot()))
	if err != nil {
		s.logger.Error("encode snapshot", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}
