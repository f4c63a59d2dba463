package cfg

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadArgsDefaults(t *testing.T) {
	unsetEnv(t, "SOURCE_URL", "FEEDS_DIR", "PORT", "WORKER_COUNT", "REFRESH_INTERVAL", "FETCH_TIMEOUT",
		"MANUAL_REFRESH_PER_MINUTE", "USER_AGENT", "DEBUG")
	t.Setenv("TZ", "UTC")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.GetRefreshInterval() != 5*time.Minute {
		t.Errorf("Expected refresh interval 5m, got %v", cfg.GetRefreshInterval())
	}
	if cfg.GetFetchTimeout() != 30*time.Second {
		t.Errorf("Expected fetch timeout 30s, got %v", cfg.GetFetchTimeout())
	}
	if cfg.WorkerCount != 1 {
		t.Errorf("Expected worker count 1, got %d", cfg.WorkerCount)
	}
	if cfg.ManualRefreshPerMinute != 2 {
		t.Errorf("Expected 2 manual refreshes per minute, got %d", cfg.ManualRefreshPerMinute)
	}
	if cfg.UserAgent != "Day Reel/1.0" {
		t.Errorf("Expected default user agent, got '%s'", cfg.UserAgent)
	}
	if cfg.FeedsDir != "./feeds" {
		t.Errorf("Expected feeds dir './feeds', got '%s'", cfg.FeedsDir)
	}
	if cfg.SourceURL != DefaultSourceURL {
		t.Errorf("Expected default source URL '%s', got '%s'", DefaultSourceURL, cfg.SourceURL)
	}
}

func TestLoadArgsEmptySourceURLDisablesSpreadsheet(t *testing.T) {
	t.Setenv("SOURCE_URL", "")
	t.Setenv("TZ", "UTC")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.SourceURL != "" {
		t.Errorf("Expected empty source URL, got '%s'", cfg.SourceURL)
	}

	cfg, err = LoadArgs([]string{"--source-url", ""})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.SourceURL != "" {
		t.Errorf("Expected empty source URL from flag, got '%s'", cfg.SourceURL)
	}
}

func TestLoadArgsFlagsAndEnv(t *testing.T) {
	unsetEnv(t, "PORT", "REFRESH_INTERVAL", "WORKER_COUNT", "DEBUG")
	t.Setenv("SOURCE_URL", "https://example.com/export.csv")
	t.Setenv("TZ", "UTC")

	cfg, err := LoadArgs([]string{"--port", "9090", "--refresh-interval", "60", "--worker-count", "0", "--debug"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.SourceURL != "https://example.com/export.csv" {
		t.Errorf("Expected source URL from environment, got '%s'", cfg.SourceURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if cfg.RefreshInterval != 60 {
		t.Errorf("Expected refresh interval 60, got %d", cfg.RefreshInterval)
	}
	if cfg.WorkerCount != 1 {
		t.Errorf("Expected worker count raised to 1, got %d", cfg.WorkerCount)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestLoadArgsInvalid(t *testing.T) {
	unsetEnv(t, "REFRESH_INTERVAL")
	t.Setenv("TZ", "UTC")

	if _, err := LoadArgs([]string{"--refresh-interval", "0"}); err == nil {
		t.Error("Expected error for zero refresh interval")
	}
	if _, err := LoadArgs([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}
