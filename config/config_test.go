package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingGivesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "monokai" || !cfg.ShowPreview || !cfg.SyncScroll {
		t.Fatalf("got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Default()
	cfg.Theme = "nord"
	cfg.WordWrap = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != "nord" || got.WordWrap {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadBadJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "markedit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("corrupt settings must error")
	}
}

func TestGetThemeFallback(t *testing.T) {
	cfg := Default()
	cfg.Theme = "does-not-exist"
	if cfg.GetTheme() != Themes["monokai"] {
		t.Fatal("unknown theme must fall back to monokai")
	}
}
