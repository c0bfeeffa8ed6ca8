package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.InlinePassCount != 4 {
		t.Fatalf("expected default InlinePassCount 4, got %d", cfg.InlinePassCount)
	}
	if cfg.Hybrid {
		t.Fatalf("expected default Hybrid false")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InlinePassCount != 4 || cfg.Hybrid {
		t.Fatalf("expected defaults for a missing file, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sml.yaml")
	if err := os.WriteFile(path, []byte("inlinePassCount: 8\nhybrid: true\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InlinePassCount != 8 || !cfg.Hybrid {
		t.Fatalf("expected overridden config, got %+v", cfg)
	}
}
