package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.ScreenerPort != 8080 {
		t.Errorf("ScreenerPort: got %d, want 8080", cfg.ScreenerPort)
	}
	if cfg.AdminPort != 8081 {
		t.Errorf("AdminPort: got %d, want 8081", cfg.AdminPort)
	}
	if cfg.BindAddress != "127.0.0.1" {
		t.Errorf("BindAddress: got %s", cfg.BindAddress)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
	if cfg.RegistryCSVPath != "registry.csv" {
		t.Errorf("RegistryCSVPath: got %s", cfg.RegistryCSVPath)
	}
	if cfg.CacheDir != ".cache" {
		t.Errorf("CacheDir: got %s", cfg.CacheDir)
	}
	if cfg.LogsDir != "logs" {
		t.Errorf("LogsDir: got %s", cfg.LogsDir)
	}
	if cfg.AliasStrictness != StrictnessStrict {
		t.Errorf("AliasStrictness: got %s, want strict", cfg.AliasStrictness)
	}
	if cfg.MaxAliases != 100 {
		t.Errorf("MaxAliases: got %d, want 100", cfg.MaxAliases)
	}
	if cfg.EnableMatchLogging {
		t.Error("EnableMatchLogging should default to false")
	}
	if cfg.LogRetentionDays != 30 {
		t.Errorf("LogRetentionDays: got %d, want 30", cfg.LogRetentionDays)
	}
}

func TestLoadEnv_ScreenerPort(t *testing.T) {
	t.Setenv("SCREENER_PORT", "9090")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.ScreenerPort != 9090 {
		t.Errorf("ScreenerPort: got %d, want 9090", cfg.ScreenerPort)
	}
}

func TestLoadEnv_AdminPort(t *testing.T) {
	t.Setenv("ADMIN_PORT", "9091")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.AdminPort != 9091 {
		t.Errorf("AdminPort: got %d, want 9091", cfg.AdminPort)
	}
}

func TestLoadEnv_RegistryCSVPath(t *testing.T) {
	t.Setenv("REGISTRY_CSV_PATH", "/data/registry.csv")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.RegistryCSVPath != "/data/registry.csv" {
		t.Errorf("RegistryCSVPath: got %s", cfg.RegistryCSVPath)
	}
}

func TestLoadEnv_AliasStrictness_Valid(t *testing.T) {
	t.Setenv("ALIAS_STRICTNESS", "aggressive")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.AliasStrictness != StrictnessAggressive {
		t.Errorf("AliasStrictness: got %s, want aggressive", cfg.AliasStrictness)
	}
}

func TestLoadEnv_AliasStrictness_Invalid_Ignored(t *testing.T) {
	t.Setenv("ALIAS_STRICTNESS", "yolo")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.AliasStrictness != StrictnessStrict {
		t.Errorf("AliasStrictness: got %s, want strict (invalid value should be ignored)", cfg.AliasStrictness)
	}
}

func TestLoadEnv_MaxAliases(t *testing.T) {
	t.Setenv("MAX_ALIASES", "50")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.MaxAliases != 50 {
		t.Errorf("MaxAliases: got %d, want 50", cfg.MaxAliases)
	}
}

func TestLoadEnv_MaxAliases_Zero_Ignored(t *testing.T) {
	t.Setenv("MAX_ALIASES", "0")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.MaxAliases != 100 {
		t.Errorf("MaxAliases: got %d, want 100 (zero should be ignored)", cfg.MaxAliases)
	}
}

func TestLoadEnv_EnableMatchLogging(t *testing.T) {
	t.Setenv("ENABLE_MATCH_LOGGING", "true")
	cfg := defaults()
	loadEnv(cfg)
	if !cfg.EnableMatchLogging {
		t.Error("EnableMatchLogging should be true")
	}
}

func TestLoadEnv_LogRetentionDays(t *testing.T) {
	t.Setenv("LOG_RETENTION_DAYS", "7")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.LogRetentionDays != 7 {
		t.Errorf("LogRetentionDays: got %d, want 7", cfg.LogRetentionDays)
	}
}

func TestLoadEnv_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s", cfg.LogLevel)
	}
}

func TestLoadEnv_BindAddress(t *testing.T) {
	t.Setenv("BIND_ADDRESS", "0.0.0.0")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.BindAddress != "0.0.0.0" {
		t.Errorf("BindAddress: got %s", cfg.BindAddress)
	}
}

func TestLoadEnv_AdminToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret-token")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.AdminToken != "secret-token" {
		t.Errorf("AdminToken: got %s", cfg.AdminToken)
	}
}

func TestLoadEnv_InvalidPort_Ignored(t *testing.T) {
	t.Setenv("SCREENER_PORT", "not-a-number")
	cfg := defaults()
	loadEnv(cfg)
	if cfg.ScreenerPort != 8080 {
		t.Errorf("ScreenerPort: got %d, want 8080 (invalid env should be ignored)", cfg.ScreenerPort)
	}
}

func TestLoadFile_ValidJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	if err != nil {
		t.Fatal(err)
	}

	data, marshalErr := json.Marshal(map[string]any{
		"screenerPort":    9999,
		"aliasStrictness": "balanced",
		"maxAliases":      42,
	})
	if marshalErr != nil {
		t.Fatal(marshalErr)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	loadFile(cfg, f.Name())

	if cfg.ScreenerPort != 9999 {
		t.Errorf("ScreenerPort: got %d, want 9999", cfg.ScreenerPort)
	}
	if cfg.AliasStrictness != StrictnessBalanced {
		t.Errorf("AliasStrictness: got %s, want balanced", cfg.AliasStrictness)
	}
	if cfg.MaxAliases != 42 {
		t.Errorf("MaxAliases: got %d, want 42", cfg.MaxAliases)
	}
}

func TestLoadFile_Missing_IsNoOp(t *testing.T) {
	cfg := defaults()
	loadFile(cfg, "/nonexistent/path/config.json")
	if cfg.ScreenerPort != 8080 {
		t.Errorf("ScreenerPort changed unexpectedly: %d", cfg.ScreenerPort)
	}
}

func TestLoadFile_InvalidJSON_PreservesDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-bad-*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{this is not json}"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	loadFile(cfg, f.Name())
	if cfg.ScreenerPort != 8080 {
		t.Errorf("ScreenerPort changed on bad JSON: %d", cfg.ScreenerPort)
	}
}

func TestLoad_ReturnsNonNil(t *testing.T) {
	cfg := Load()
	if cfg == nil {
		t.Fatal("Load() returned nil")
	}
	if cfg.ScreenerPort <= 0 {
		t.Errorf("ScreenerPort should be positive, got %d", cfg.ScreenerPort)
	}
}
