// Command screenerd is the registry mention screener service.
//
// It loads the government registry CSV, builds (or reloads from cache)
// an Aho-Corasick automaton over every entry's generated name aliases,
// then serves a scan API that flags registry-entry mentions in
// arbitrary text along with the original surrounding context.
//
// A separate admin API, bound to 127.0.0.1 only, exposes runtime status
// and lets an operator quarantine a false-positive alias without a
// registry edit or restart.
//
// Usage:
//
//	./screenerd
//
//	# Custom ports
//	SCREENER_PORT=9090 ADMIN_PORT=9091 ./screenerd
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/logger"
	"github.com/filstack/VED-jurchecker/internal/screener"
)

func main() {
	cfg := config.Load()
	log := logger.New("SCREENERD", cfg.LogLevel)

	printBanner(cfg)

	s, err := screener.Build(cfg, log)
	if err != nil {
		log.Fatalf("STARTUP", "%v", err)
	}
	defer s.Close()
	s.HTTPAPI.SetReady(true)

	// Admin, like the teacher's management server, has no graceful
	// shutdown of its own: a Fatal-on-error background goroutine.
	go func() {
		if err := s.Admin.ListenAndServe(); err != nil {
			log.Fatalf("ADMIN_STARTUP", "%v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.ScreenerPort)
	log.Infof("SCREENER_STARTUP", "listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPAPI.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("SHUTDOWN", "signal received, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("SHUTDOWN", "error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("SCREENER_STARTUP", "%v", err)
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf(`
+----------------------------------------------------------+
|          Registry Mention Screener  (Go)                 |
+----------------------------------------------------------+
  Scan port        : %d
  Admin port       : %d
  Registry CSV     : %s
  Cache dir        : %s
  Alias mode       : %s
  Match logging    : %v

  Check health:
    curl http://localhost:%d/healthz

  Scan text:
    curl -X POST http://localhost:%d/v1/scan -d '{"text":"..."}'
`, cfg.ScreenerPort, cfg.AdminPort,
		cfg.RegistryCSVPath, cfg.CacheDir,
		cfg.AliasStrictness, cfg.EnableMatchLogging,
		cfg.ScreenerPort, cfg.ScreenerPort)
}
