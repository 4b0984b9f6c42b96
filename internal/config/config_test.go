package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tradenet/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.LayoutParams() != layout.DefaultParams() {
		t.Error("expected default layout params")
	}
	if cfg.Layout.MaxTicks != 500 {
		t.Errorf("expected max ticks 500, got %d", cfg.Layout.MaxTicks)
	}
	if cfg.Interact.FrameRate <= 0 {
		t.Error("frame rate should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("compact")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Layout.RadiusScale != 0.7 {
		t.Errorf("expected radius scale 0.7, got %f", cfg.Layout.RadiusScale)
	}
	if cfg.Render != DefaultConfig().Render {
		t.Error("preset should keep default render settings")
	}
	for _, name := range ListPresets() {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"compact", "default", "spread"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, presets[i])
		}
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tradenet"+ext)
			cfg := DefaultConfig()
			cfg.Layout.Damping = 0.7
			cfg.Render.Labels = false
			cfg.Theme = "retro"

			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if *got != *cfg {
				t.Errorf("expected %+v, got %+v", cfg, got)
			}
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  repulsion: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Layout.Repulsion != 2 || cfg.Layout.Damping != layout.DefaultDamping {
		t.Errorf("expected repulsion override with default damping, got %+v", cfg.Layout)
	}
}

func TestLoadRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  damping: .nan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, layout.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"damping", func(c *Config) { c.Layout.Damping = 1 }, layout.ErrInvalidParams},
		{"size", func(c *Config) { c.Render.Width = 0 }, ErrInvalid},
		{"stroke", func(c *Config) { c.Render.MaxWidth = 0.5 }, ErrInvalid},
		{"frame rate", func(c *Config) { c.Interact.FrameRate = 0 }, ErrInvalid},
		{"NaN damping", func(c *Config) { c.Layout.Damping = math.NaN() }, layout.ErrInvalidParams},
		{"NaN node radius", func(c *Config) { c.Render.NodeRadius = math.NaN() }, ErrInvalid},
		{"+Inf max width", func(c *Config) { c.Render.MaxWidth = math.Inf(1) }, ErrInvalid},
		{"NaN edge threshold", func(c *Config) { c.Interact.EdgeThreshold = math.NaN() }, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
