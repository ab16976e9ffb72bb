package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Physics.GravityConstant != 10 {
		t.Errorf("gravity_constant = %v, want 10", cfg.Physics.GravityConstant)
	}
	if cfg.Collision.GenericFudge != 0.9 {
		t.Errorf("generic_fudge = %v, want 0.9", cfg.Collision.GenericFudge)
	}
	if cfg.Trail.Capacity != 1400 || cfg.Sparks.Capacity != 1200 || cfg.Debris.Count != 900 {
		t.Errorf("capacities = %d/%d/%d, want 1400/1200/900",
			cfg.Trail.Capacity, cfg.Sparks.Capacity, cfg.Debris.Count)
	}
	if cfg.Merge.MoltenColor != 0xffaa00 {
		t.Errorf("molten_color = %#x, want 0xffaa00", cfg.Merge.MoltenColor)
	}
	if cfg.Derived.TicksPerSec != 60 {
		t.Errorf("derived ticks per second = %d, want 60", cfg.Derived.TicksPerSec)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("physics:\n  gravity_constant: 3.5\nmerge:\n  delay_ticks: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.GravityConstant != 3.5 {
		t.Errorf("gravity_constant = %v, want 3.5", cfg.Physics.GravityConstant)
	}
	if cfg.Merge.DelayTicks != 0 {
		t.Errorf("delay_ticks = %d, want 0", cfg.Merge.DelayTicks)
	}
	// Untouched sections keep their defaults
	if cfg.Physics.MaxSubSteps != 10 {
		t.Errorf("max_substeps = %d, want default 10", cfg.Physics.MaxSubSteps)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero physics step", "physics:\n  fixed_step: 0\n"},
		{"zero effects step", "effects:\n  fixed_step: 0\n"},
		{"trail fade of one", "trail:\n  fade_factor: 1\n"},
		{"zero capacity", "sparks:\n  capacity: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Deformation.NearFactor = 2.0

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Deformation.NearFactor != 2.0 {
		t.Errorf("near_factor = %v, want 2.0", reloaded.Deformation.NearFactor)
	}
}
