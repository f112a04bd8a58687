package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureExistsCreatesFile(t *testing.T) {
	home := t.TempDir()

	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	if _, err := os.Stat(GetConfigPath(home)); err != nil {
		t.Fatalf("config file missing after EnsureExists: %v", err)
	}

	// Idempotent on a second run.
	if err := EnsureExists(home); err != nil {
		t.Fatalf("second EnsureExists failed: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	home := t.TempDir()
	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantDB := filepath.Join(home, ConfigDir, "typeset.db")
	if cfg.DBPath != wantDB {
		t.Errorf("expected default dbpath %q, got %q", wantDB, cfg.DBPath)
	}
	if cfg.HTTPAddr != ":3001" {
		t.Errorf("expected default http_addr :3001, got %q", cfg.HTTPAddr)
	}
	if cfg.RowHeight != 1 {
		t.Errorf("expected default row_height 1, got %d", cfg.RowHeight)
	}
	if cfg.Overscan != 3 {
		t.Errorf("expected default overscan 3, got %d", cfg.Overscan)
	}
}

func TestLoadRespectsExplicitValues(t *testing.T) {
	home := t.TempDir()
	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	body := "http_addr: \":9000\"\nrow_height: 2\noverscan: 5\neditor: vim\n"
	if err := os.WriteFile(GetConfigPath(home), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9000" {
		t.Errorf("expected http_addr :9000, got %q", cfg.HTTPAddr)
	}
	if cfg.RowHeight != 2 {
		t.Errorf("expected row_height 2, got %d", cfg.RowHeight)
	}
	if cfg.Overscan != 5 {
		t.Errorf("expected overscan 5, got %d", cfg.Overscan)
	}
	if cfg.Editor != "vim" {
		t.Errorf("expected editor vim, got %q", cfg.Editor)
	}
}

func TestLoadRejectsInvalidLayout(t *testing.T) {
	home := t.TempDir()
	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	body := "row_height: -1\n"
	if err := os.WriteFile(GetConfigPath(home), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(home); err == nil {
		t.Fatal("expected error for negative row_height, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.Editor = "nano"
	cfg.Overscan = 7
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	again, err := Load(home)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Editor != "nano" {
		t.Errorf("expected editor nano after reload, got %q", again.Editor)
	}
	if again.Overscan != 7 {
		t.Errorf("expected overscan 7 after reload, got %d", again.Overscan)
	}
}
