package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed - %v", err)
		}
		if cfg.Server.HTTPAddr != ":8080" {
			t.Errorf("expected :8080, got %s", cfg.Server.HTTPAddr)
		}
		if cfg.Scan.Interval != time.Second {
			t.Errorf("expected 1s scan interval, got %s", cfg.Scan.Interval)
		}
		if cfg.Chat.HistoryLimit != 50 {
			t.Errorf("expected history limit 50, got %d", cfg.Chat.HistoryLimit)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  http_addr: \":9000\"\nscan:\n  interval: 250ms\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config file - %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed - %v", err)
		}
		if cfg.Server.HTTPAddr != ":9000" {
			t.Errorf("expected :9000, got %s", cfg.Server.HTTPAddr)
		}
		if cfg.Scan.Interval != 250*time.Millisecond {
			t.Errorf("expected 250ms, got %s", cfg.Scan.Interval)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Errorf("expected an error for a missing config file")
		}
	})
}
