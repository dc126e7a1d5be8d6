package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Surrogate.Name != "vortex" {
		t.Errorf("expected surrogate vortex, got %s", cfg.Surrogate.Name)
	}
	if cfg.Corrector.Iterations != 40 {
		t.Errorf("expected 40 iterations, got %d", cfg.Corrector.Iterations)
	}
	if cfg.Corrector.EnergyLimit != 75.0 {
		t.Errorf("expected energy limit 75, got %g", cfg.Corrector.EnergyLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default ok", func(c *Config) {}, false},
		{"bad dimensions", func(c *Config) { c.Geometry.Dimensions = 4 }, true},
		{"zero nx", func(c *Config) { c.Geometry.Resolution.Nx = 0 }, true},
		{"negative dy", func(c *Config) { c.Geometry.Spacing.Dy = -1 }, true},
		{"3d missing dz", func(c *Config) { c.Geometry.Spacing.Dz = 0 }, true},
		{"3d zero nz", func(c *Config) { c.Geometry.Resolution.Nz = 0 }, true},
		{"2d with nz", func(c *Config) {
			c.Geometry.Dimensions = 2
			c.Geometry.Spacing.Dz = 0
		}, true},
		{"2d clean", func(c *Config) {
			c.Geometry.Dimensions = 2
			c.Geometry.Resolution.Nz = 0
			c.Geometry.Spacing.Dz = 0
		}, false},
		{"negative iterations", func(c *Config) { c.Corrector.Iterations = -1 }, true},
		{"negative energy limit", func(c *Config) { c.Corrector.EnergyLimit = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")

	cfg := GetPreset("vortex-2d")
	if cfg == nil {
		t.Fatal("preset missing")
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Geometry.Resolution.Nx != 48 || got.Geometry.Resolution.Ny != 30 {
		t.Errorf("resolution = %+v", got.Geometry.Resolution)
	}
	if got.Surrogate.Params["env_x"] != 80 {
		t.Errorf("params = %v", got.Surrogate.Params)
	}
	if got.Corrector.Iterations != 80 {
		t.Errorf("iterations = %d", got.Corrector.Iterations)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	cfg := DefaultConfig()
	cfg.Geometry.Dimensions = 7
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error on load")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}
