// Package admin provides a bearer-token-gated HTTP API for runtime
// inspection and quarantine management, the operational surface
// original_source's validate_database.py and jur_checker.py manual
// overrides show the original system needed but the distilled spec
// dropped. Structure and auth middleware are carried over from the
// teacher's internal/management.Server almost unchanged.
package admin

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/filstack/VED-jurchecker/internal/cache"
	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/logger"
	"github.com/filstack/VED-jurchecker/internal/metrics"
)

// Server is the admin API server.
type Server struct {
	cfg        *config.Config
	startTime  time.Time
	quarantine *cache.QuarantineStore
	entryCount int
	token      string
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// New creates an admin Server. entryCount is the number of registry
// entries currently loaded, reported by /admin/status.
func New(cfg *config.Config, quarantine *cache.QuarantineStore, entryCount int, m *metrics.Metrics, log *logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		startTime:  time.Now(),
		quarantine: quarantine,
		entryCount: entryCount,
		token:      cfg.AdminToken,
		metrics:    m,
		log:        log,
	}
	if s.token != "" {
		log.Info("ADMIN_AUTH", "bearer token authentication enabled")
	}
	return s
}

// Handler returns the HTTP handler for the admin API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/status", s.handleStatus)
	mux.HandleFunc("/admin/quarantine/add", s.handleQuarantineAdd)
	mux.HandleFunc("/admin/quarantine/remove", s.handleQuarantineRemove)
	return s.authMiddleware(mux)
}

// authMiddleware checks for a valid Bearer token if one is configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(auth[len(prefix):])), []byte(s.token)) != 1 {
			s.log.Warnf("ADMIN_AUTH", "unauthorized access attempt from %s to %s", r.RemoteAddr, r.URL.Path)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	type response struct {
		Status     string `json:"status"`
		Uptime     string `json:"uptime"`
		EntryCount int    `json:"entryCount"`
		AliasMode  string `json:"aliasMode"`
	}
	writeJSON(w, http.StatusOK, response{
		Status:     "running",
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		EntryCount: s.entryCount,
		AliasMode:  string(s.cfg.AliasStrictness),
	})
}

type quarantineRequest struct {
	Alias string `json:"alias"`
}

func (s *Server) handleQuarantineAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	var req quarantineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Alias == "" {
		http.Error(w, `invalid request: need {"alias":"..."}`, http.StatusBadRequest)
		return
	}
	if err := s.quarantine.Add(req.Alias); err != nil {
		s.log.Errorf("ADMIN_QUARANTINE", "add %q: %v", req.Alias, err)
		http.Error(w, "quarantine store error", http.StatusInternalServerError)
		return
	}
	s.log.Infof("ADMIN_QUARANTINE", "added %q", req.Alias)
	writeJSON(w, http.StatusOK, map[string]string{"added": req.Alias})
}

func (s *Server) handleQuarantineRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	var req quarantineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Alias == "" {
		http.Error(w, `invalid request: need {"alias":"..."}`, http.StatusBadRequest)
		return
	}
	if err := s.quarantine.Remove(req.Alias); err != nil {
		s.log.Errorf("ADMIN_QUARANTINE", "remove %q: %v", req.Alias, err)
		http.Error(w, "quarantine store error", http.StatusInternalServerError)
		return
	}
	s.log.Infof("ADMIN_QUARANTINE", "removed %q", req.Alias)
	writeJSON(w, http.StatusOK, map[string]string{"removed": req.Alias})
}

// ListenAndServe starts the admin HTTP server, bound to 127.0.0.1 only
// regardless of cfg.BindAddress — the admin API is never meant to be
// reachable off-box.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.AdminPort)
	s.log.Infof("ADMIN_STARTUP", "listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
