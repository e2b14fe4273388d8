// Package httpapi is the public-facing HTTP front door: a single scan
// endpoint plus health and metrics probes, the thin request/response
// shell around internal/scanner. Grounded on the teacher's
// internal/proxy.Server for the Server-struct-plus-ServeHTTP shape,
// and on internal/management.Server's handler/writeJSON idiom for the
// JSON endpoints themselves (this package has no tunnel to run, so the
// CONNECT-hijack half of proxy.Server has no counterpart here).
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/logger"
	"github.com/filstack/VED-jurchecker/internal/metrics"
	"github.com/filstack/VED-jurchecker/internal/scanner"
)

// maxScanBodyBytes bounds the request body accepted by /v1/scan.
const maxScanBodyBytes = 1 << 20 // 1 MiB

// Server is the public scan/health/metrics HTTP server.
type Server struct {
	cfg     *config.Config
	scan    *scanner.Scanner
	metrics *metrics.Metrics
	log     *logger.Logger
	ready   bool
}

// New creates a Server. Ready defaults to false; call SetReady(true)
// once startup (registry load, automaton build) has completed, so
// /healthz correctly reports 503 during that window.
func New(cfg *config.Config, scan *scanner.Scanner, m *metrics.Metrics, log *logger.Logger) *Server {
	return &Server{cfg: cfg, scan: scan, metrics: m, log: log}
}

// SetReady marks the server ready (or not) to serve traffic.
func (s *Server) SetReady(ready bool) { s.ready = ready }

// Handler returns the HTTP handler for the public API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/scan", s.handleScan)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/v1/metrics", s.handleMetrics)
	return mux
}

type scanRequest struct {
	Text      string `json:"text"`
	RequestID string `json:"request_id,omitempty"`
}

type scanResponse struct {
	Candidates []scanner.Candidate `json:"candidates"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxScanBodyBytes)

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Warnf("SCAN_REQUEST", "malformed body from %s: %v", r.RemoteAddr, err)
		http.Error(w, `invalid request: need {"text":"..."}`, http.StatusBadRequest)
		return
	}

	start := time.Now()
	candidates := s.scan.Scan(r.Context(), req.Text, req.RequestID)
	if s.metrics != nil {
		s.metrics.RecordScanLatency(time.Since(start))
	}

	writeJSON(w, http.StatusOK, scanResponse{Candidates: candidates})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.ready {
		http.Error(w, `{"status":"starting"}`, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"alias_mode": string(s.cfg.AliasStrictness),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		http.Error(w, "metrics not enabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
