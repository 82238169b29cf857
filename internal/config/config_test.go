package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWorldMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadWorld(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.ViewDistance != 10 {
		t.Fatalf("expected default view distance 10, got %d", cfg.ViewDistance)
	}
}

func TestLoadWorldYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("motd: Hello\nview_distance: 6\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadWorld(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Motd != "Hello" || cfg.ViewDistance != 6 {
		t.Fatalf("expected YAML overrides applied, got %+v", cfg)
	}
	if cfg.MaxPlayers != 20 {
		t.Fatalf("expected untouched field to keep its default, got %d", cfg.MaxPlayers)
	}
}

func TestWorldFlagsApplyOnlyOverridesSetFields(t *testing.T) {
	base := defaultWorld()
	flags := WorldFlags{ListenAddr: "0.0.0.0:9999"}
	got := flags.Apply(base)
	if got.ListenAddr != "0.0.0.0:9999" {
		t.Fatalf("expected flag override, got %s", got.ListenAddr)
	}
	if got.InternalAddr != base.InternalAddr {
		t.Fatalf("unset flag should leave the base value, got %s", got.InternalAddr)
	}
}
