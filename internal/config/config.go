package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/geom"
)

type Config struct {
	Geometry  geom.Geometry   `yaml:"geometry"`
	Surrogate SurrogateConfig `yaml:"surrogate"`
	Corrector CorrectorConfig `yaml:"corrector"`
}

type SurrogateConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

type CorrectorConfig struct {
	Iterations  int     `yaml:"iterations"`
	EnergyLimit float64 `yaml:"energy_limit"`
	Parallel    bool    `yaml:"parallel"`
}

func DefaultConfig() *Config {
	return &Config{
		Geometry: geom.Geometry{
			Dimensions: 3,
			Resolution: geom.Resolution{Nx: 32, Ny: 32, Nz: 16},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1, Dz: 1},
		},
		Surrogate: SurrogateConfig{Name: "vortex"},
		Corrector: CorrectorConfig{
			Iterations:  corrector.DefaultIterations,
			EnergyLimit: corrector.DefaultEnergyLimit,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// geometry is taken verbatim from the file so a 2D config is not
	// polluted by 3D defaults; only tuning knobs fall back to defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Surrogate.Name == "" {
		cfg.Surrogate.Name = "vortex"
	}
	if cfg.Corrector.Iterations == 0 {
		cfg.Corrector.Iterations = corrector.DefaultIterations
	}
	if cfg.Corrector.EnergyLimit == 0 {
		cfg.Corrector.EnergyLimit = corrector.DefaultEnergyLimit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects geometries the numeric core is not defined on. It is
// the single gate: everything downstream trusts a validated config.
func (c *Config) Validate() error {
	g := c.Geometry
	if g.Dimensions != 2 && g.Dimensions != 3 {
		return fmt.Errorf("dimensions must be 2 or 3, got %d", g.Dimensions)
	}
	if g.Resolution.Nx < 1 || g.Resolution.Ny < 1 {
		return fmt.Errorf("resolution must be at least 1x1, got %dx%d",
			g.Resolution.Nx, g.Resolution.Ny)
	}
	if g.Spacing.Dx <= 0 || g.Spacing.Dy <= 0 {
		return fmt.Errorf("spacing must be positive, got dx=%g dy=%g",
			g.Spacing.Dx, g.Spacing.Dy)
	}
	if g.Dimensions == 3 {
		if g.Resolution.Nz < 1 {
			return fmt.Errorf("3d grid needs nz >= 1, got %d", g.Resolution.Nz)
		}
		if g.Spacing.Dz <= 0 {
			return fmt.Errorf("3d grid needs positive dz, got %g", g.Spacing.Dz)
		}
	} else {
		if g.Resolution.Nz != 0 {
			return fmt.Errorf("2d grid must not set nz, got %d", g.Resolution.Nz)
		}
		if g.Spacing.Dz != 0 {
			return fmt.Errorf("2d grid must not set dz, got %g", g.Spacing.Dz)
		}
	}
	if c.Corrector.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Corrector.Iterations)
	}
	if c.Corrector.EnergyLimit < 0 {
		return fmt.Errorf("energy limit must not be negative, got %g", c.Corrector.EnergyLimit)
	}
	return nil
}
