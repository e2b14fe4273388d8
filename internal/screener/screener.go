// Package screener wires together registry loading, automaton
// construction (or cache reload), and the scan/admin HTTP servers into
// one running process. It is the startup-orchestration counterpart of
// the teacher's cmd/proxy/main.go, split out into a package of its own
// so cmd/screenerd stays a thin entry point.
package screener

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/filstack/VED-jurchecker/internal/admin"
	"github.com/filstack/VED-jurchecker/internal/alias"
	"github.com/filstack/VED-jurchecker/internal/automaton"
	"github.com/filstack/VED-jurchecker/internal/cache"
	"github.com/filstack/VED-jurchecker/internal/config"
	"github.com/filstack/VED-jurchecker/internal/httpapi"
	"github.com/filstack/VED-jurchecker/internal/logger"
	"github.com/filstack/VED-jurchecker/internal/metrics"
	"github.com/filstack/VED-jurchecker/internal/morph"
	"github.com/filstack/VED-jurchecker/internal/registry"
	"github.com/filstack/VED-jurchecker/internal/scanner"
	"github.com/filstack/VED-jurchecker/internal/telemetry"
)

// Screener holds every long-lived component of a running instance.
type Screener struct {
	Cfg     *config.Config
	Metrics *metrics.Metrics
	Log     *logger.Logger

	Scanner    *scanner.Scanner
	HTTPAPI    *httpapi.Server
	Admin      *admin.Server
	Quarantine *cache.QuarantineStore
	Telemetry  *telemetry.Writer

	EntryCount int
}

// Build loads the registry, builds or reloads the cached automaton, and
// assembles every component needed to serve traffic. It does not start
// listening; cmd/screenerd serves the returned Screener's
// HTTPAPI.Handler() and calls Admin.ListenAndServe once Build returns
// successfully.
func Build(cfg *config.Config, log *logger.Logger) (*Screener, error) {
	m := metrics.New()

	entries, err := registry.LoadCSV(cfg.RegistryCSVPath)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	log.Infof("STARTUP", "loaded %d registry entries from %s", len(entries), cfg.RegistryCSVPath)

	index, err := loadOrBuildIndex(cfg, entries, m, log)
	if err != nil {
		return nil, err
	}

	// loadOrBuildIndex's BundleStore has already created cfg.CacheDir,
	// so bolt.Open below is guaranteed a directory that exists.
	quarantineStore, err := cache.NewQuarantineStore(filepath.Join(cfg.CacheDir, "quarantine.db"))
	if err != nil {
		return nil, fmt.Errorf("open quarantine store: %w", err)
	}

	var telemetryWriter *telemetry.Writer
	if cfg.EnableMatchLogging {
		telemetryWriter, err = telemetry.New(cfg.LogsDir, log)
		if err != nil {
			quarantineStore.Close()
			return nil, fmt.Errorf("open telemetry writer: %w", err)
		}
		telemetry.CleanupOldLogs(cfg.LogsDir, cfg.LogRetentionDays, log)
	}

	scan := scanner.New(index, quarantineStore, telemetryWriter, m)
	httpSrv := httpapi.New(cfg, scan, m, log)
	adminSrv := admin.New(cfg, quarantineStore, len(entries), m, log)

	return &Screener{
		Cfg:        cfg,
		Metrics:    m,
		Log:        log,
		Scanner:    scan,
		HTTPAPI:    httpSrv,
		Admin:      adminSrv,
		Quarantine: quarantineStore,
		Telemetry:  telemetryWriter,
		EntryCount: len(entries),
	}, nil
}

// loadOrBuildIndex tries the persistent bundle cache before falling
// back to a fresh automaton build, matching spec.md §4.H's
// load-from-cache-else-build-and-save sequence.
func loadOrBuildIndex(cfg *config.Config, entries []registry.Entry, m *metrics.Metrics, log *logger.Logger) (*automaton.Index, error) {
	store, err := cache.NewBundleStore(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open bundle cache: %w", err)
	}

	if bundle, ok, err := store.Load(cfg.RegistryCSVPath, cfg.AliasStrictness); err != nil {
		log.Warnf("CACHE_LOAD", "bundle cache read error, rebuilding: %v", err)
		m.ErrorsCacheLoad.Add(1)
	} else if ok {
		m.CacheHits.Add(1)
		log.Infof("CACHE_LOAD", "loaded automaton from cache (%d patterns)", len(bundle.Patterns))
		return automaton.FromBundle(bundle), nil
	} else {
		m.CacheMisses.Add(1)
	}

	provider := morph.New()
	start := time.Now()
	index := automaton.Build(entries, func(e registry.Entry) []string {
		return alias.Expand(e, cfg.AliasStrictness, provider, cfg.MaxAliases)
	}, log)
	m.RecordBuildLatency(time.Since(start))
	m.AliasesTotal.Add(int64(index.PatternCount()))

	if err := store.Save(cfg.RegistryCSVPath, cfg.AliasStrictness, index.ToBundle()); err != nil {
		log.Warnf("CACHE_SAVE", "could not persist automaton bundle: %v", err)
	}

	return index, nil
}

// Close releases every component holding an open resource.
func (s *Screener) Close() {
	s.Scanner.Close()
	if s.Telemetry != nil {
		s.Telemetry.Close()
	}
	if s.Quarantine != nil {
		s.Quarantine.Close()
	}
}
