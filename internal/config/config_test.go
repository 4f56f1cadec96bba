// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Fetch.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Fetch.Concurrency)
	}
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Errorf("expected timeout 10, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Output.File != "rss-feeds.txt" {
		t.Errorf("expected output rss-feeds.txt, got %s", cfg.Output.File)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled by default")
	}
}

func TestConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("RSSGEN_HOME", tmpDir)

	dir := Dir()
	if dir != tmpDir {
		t.Errorf("expected %s, got %s", tmpDir, dir)
	}
	if DBPath() != filepath.Join(tmpDir, "history.db") {
		t.Errorf("unexpected db path %s", DBPath())
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("RSSGEN_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Errorf("expected default timeout, got %d", cfg.Fetch.TimeoutSeconds)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("RSSGEN_HOME", t.TempDir())

	cfg := Default()
	cfg.Fetch.Concurrency = 10
	cfg.History.Enabled = true

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Fetch.Concurrency != 10 {
		t.Errorf("expected concurrency 10, got %d", loaded.Fetch.Concurrency)
	}
	if !loaded.History.Enabled {
		t.Error("expected history enabled after reload")
	}
}

func TestLoadNormalizesZeroValues(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("RSSGEN_HOME", tmpDir)

	data := []byte("fetch:\n  timeout_seconds: 0\n  concurrency: -1\noutput:\n  file: \"\"\n")
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Errorf("expected timeout 10, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Fetch.Concurrency)
	}
	if cfg.Output.File != "rss-feeds.txt" {
		t.Errorf("expected default output file, got %q", cfg.Output.File)
	}
}
