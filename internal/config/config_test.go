package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMergeConfigMatchesEmbeddedYAML(t *testing.T) {
	loaded, err := LoadMerge("")
	if err != nil {
		t.Fatalf("LoadMerge() failed: %v", err)
	}
	want := DefaultMergeConfig()

	if loaded.Physics.Gravity != want.Physics.Gravity {
		t.Errorf("gravity = %v, want %v", loaded.Physics.Gravity, want.Physics.Gravity)
	}
	if loaded.Merge.GlideMs != want.Merge.GlideMs {
		t.Errorf("glide_ms = %v, want %v", loaded.Merge.GlideMs, want.Merge.GlideMs)
	}
	if loaded.Danger.GraceMs != want.Danger.GraceMs {
		t.Errorf("grace_ms = %v, want %v", loaded.Danger.GraceMs, want.Danger.GraceMs)
	}
	if len(loaded.Spawn.Weights) != len(want.Spawn.Weights) {
		t.Errorf("spawn weights = %d entries, want %d", len(loaded.Spawn.Weights), len(want.Spawn.Weights))
	}
}

func TestLoadMergeCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte("physics:\n  gravity: 900\nmerge:\n  glide_ms: 150\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMerge(path)
	if err != nil {
		t.Fatalf("LoadMerge(%s) failed: %v", path, err)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("gravity = %v, want 900", cfg.Physics.Gravity)
	}
	if cfg.Merge.GlideMs != 150 {
		t.Errorf("glide_ms = %v, want 150", cfg.Merge.GlideMs)
	}
	// Fields absent from the file must fall back to defaults, not zero
	if cfg.Physics.MaxSpeed != DefaultMergeConfig().Physics.MaxSpeed {
		t.Errorf("max_speed = %v, want default", cfg.Physics.MaxSpeed)
	}
	if cfg.Limits.MaxDiscs != DefaultMergeConfig().Limits.MaxDiscs {
		t.Errorf("max_discs = %v, want default", cfg.Limits.MaxDiscs)
	}
}

func TestLoadMergeMissingCustomPath(t *testing.T) {
	if _, err := LoadMerge("/nonexistent/nope.yaml"); err == nil {
		t.Error("expected error for missing custom config path")
	}
}

func TestSanitizeRestoresZeroFields(t *testing.T) {
	var cfg MergeConfig
	cfg.Sanitize()
	want := DefaultMergeConfig()
	if cfg.Physics.Gravity != want.Physics.Gravity {
		t.Errorf("gravity = %v, want %v", cfg.Physics.Gravity, want.Physics.Gravity)
	}
	if cfg.Danger.StackCount != want.Danger.StackCount {
		t.Errorf("stack_count = %v, want %v", cfg.Danger.StackCount, want.Danger.StackCount)
	}
	if len(cfg.Spawn.Weights) == 0 {
		t.Error("spawn weights not restored")
	}
}
