package config

import (
	"sort"

	"github.com/san-kum/flowlab/internal/geom"
)

var Presets = map[string]*Config{
	"vortex-3d": {
		Geometry: geom.Geometry{
			Dimensions: 3,
			Resolution: geom.Resolution{Nx: 18, Ny: 14, Nz: 6},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1, Dz: 1},
		},
		Surrogate: SurrogateConfig{
			Name:   "vortex",
			Params: map[string]float64{"axial": 0.4},
		},
		Corrector: CorrectorConfig{Iterations: 80, EnergyLimit: 75.0},
	},
	"vortex-2d": {
		Geometry: geom.Geometry{
			Dimensions: 2,
			Resolution: geom.Resolution{Nx: 48, Ny: 30},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1},
		},
		Surrogate: SurrogateConfig{
			Name:   "vortex",
			Params: map[string]float64{"env_x": 80, "env_y": 30},
		},
		Corrector: CorrectorConfig{Iterations: 80, EnergyLimit: 75.0},
	},
	"shear-2d": {
		Geometry: geom.Geometry{
			Dimensions: 2,
			Resolution: geom.Resolution{Nx: 40, Ny: 24},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1},
		},
		Surrogate: SurrogateConfig{
			Name:   "shear",
			Params: map[string]float64{"rate": 0.5},
		},
		Corrector: CorrectorConfig{Iterations: 40, EnergyLimit: 75.0},
	},
	"source-3d": {
		Geometry: geom.Geometry{
			Dimensions: 3,
			Resolution: geom.Resolution{Nx: 24, Ny: 24, Nz: 12},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1, Dz: 1},
		},
		Surrogate: SurrogateConfig{
			Name:   "source",
			Params: map[string]float64{"strength": 4},
		},
		Corrector: CorrectorConfig{Iterations: 120, EnergyLimit: 10.0},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
