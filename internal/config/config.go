// Package config loads and holds all screener configuration.
// Settings are layered: defaults → screener-config.json → environment variables (env vars win).
package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Strictness controls how aggressively the Dangerous-Alias Filter rejects
// generated aliases before they enter the automaton.
type Strictness string

// Strictness modes, from most to least conservative.
const (
	StrictnessStrict     Strictness = "strict"
	StrictnessBalanced   Strictness = "balanced"
	StrictnessAggressive Strictness = "aggressive"
)

// Config holds the full screener configuration.
type Config struct {
	ScreenerPort int    `json:"screenerPort"`
	AdminPort    int    `json:"adminPort"`
	BindAddress  string `json:"bindAddress"`
	LogLevel     string `json:"logLevel"`

	RegistryCSVPath string     `json:"registryCsvPath"`
	CacheDir        string     `json:"cacheDir"`
	LogsDir         string     `json:"logsDir"`
	AliasStrictness Strictness `json:"aliasStrictness"`
	MaxAliases      int        `json:"maxAliases"`

	EnableMatchLogging bool `json:"enableMatchLogging"`
	LogRetentionDays   int  `json:"logRetentionDays"`

	AdminToken string `json:"adminToken"`
}

// Load returns config with defaults overridden by screener-config.json and env vars.
func Load() *Config {
	cfg := defaults()
	loadFile(cfg, "screener-config.json")
	loadEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		ScreenerPort:       8080,
		AdminPort:          8081,
		BindAddress:        "127.0.0.1",
		LogLevel:           "info",
		RegistryCSVPath:    "registry.csv",
		CacheDir:           ".cache",
		LogsDir:            "logs",
		AliasStrictness:    StrictnessStrict,
		MaxAliases:         100,
		EnableMatchLogging: false,
		LogRetentionDays:   30,
	}
}

func loadFile(cfg *Config, path string) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a controlled config file path, not user input
	if err != nil {
		return // file is optional
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("[CONFIG] Warning: could not parse %s: %v", path, err)
	} else {
		log.Printf("[CONFIG] Loaded %s", path)
	}
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("SCREENER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ScreenerPort = n
		}
	}
	if v := os.Getenv("ADMIN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AdminPort = n
		}
	}
	if v := os.Getenv("BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REGISTRY_CSV_PATH"); v != "" {
		cfg.RegistryCSVPath = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("LOGS_DIR"); v != "" {
		cfg.LogsDir = v
	}
	if v := os.Getenv("ALIAS_STRICTNESS"); v != "" {
		switch Strictness(v) {
		case StrictnessStrict, StrictnessBalanced, StrictnessAggressive:
			cfg.AliasStrictness = Strictness(v)
		default:
			log.Printf("[CONFIG] Warning: unrecognized ALIAS_STRICTNESS %q, keeping %q", v, cfg.AliasStrictness)
		}
	}
	if v := os.Getenv("MAX_ALIASES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAliases = n
		}
	}
	if v := os.Getenv("ENABLE_MATCH_LOGGING"); v != "" {
		cfg.EnableMatchLogging = v == "true"
	}
	if v := os.Getenv("LOG_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LogRetentionDays = n
		}
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.AdminToken = v
	}
}
