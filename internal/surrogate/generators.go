// Package surrogate produces synthetic velocity fields with known
// structure. They stand in for sensor or simulation output when
// exercising the correction pipeline.
package surrogate

import (
	"math"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
)

// Generator builds a field on a given geometry.
type Generator interface {
	Name() string
	Generate(g geom.Geometry) *field.Field
}

// center returns grid-center offsets so generated fields are symmetric
// about the middle of the volume.
func center(g geom.Geometry) (cx, cy, cz float64) {
	return float64(g.Resolution.Nx-1) / 2,
		float64(g.Resolution.Ny-1) / 2,
		float64(g.Resolution.Nz-1) / 2
}

func build(g geom.Geometry, at func(x, y, z float64) field.Vec3) *field.Field {
	nx, ny := g.Resolution.Nx, g.Resolution.Ny
	cx, cy, cz := center(g)
	if !g.Is3D() {
		vel := make([][]field.Vec3, ny)
		for j := 0; j < ny; j++ {
			vel[j] = make([]field.Vec3, nx)
			for i := 0; i < nx; i++ {
				v := at(float64(i)-cx, float64(j)-cy, 0)
				v.W = 0
				vel[j][i] = v
			}
		}
		return &field.Field{Vel2: vel}
	}
	nz := g.Resolution.Nz
	vel := make([][][]field.Vec3, nz)
	for k := 0; k < nz; k++ {
		vel[k] = make([][]field.Vec3, ny)
		for j := 0; j < ny; j++ {
			vel[k][j] = make([]field.Vec3, nx)
			for i := 0; i < nx; i++ {
				vel[k][j][i] = at(float64(i)-cx, float64(j)-cy, float64(k)-cz)
			}
		}
	}
	return &field.Field{Vel3: vel}
}

// Vortex is a Gaussian-enveloped rotation about the z axis with an
// optional rippled axial component. The ripple makes the field
// divergent on purpose.
type Vortex struct {
	Strength float64
	Axial    float64
	Ripple   float64
	EnvX     float64
	EnvY     float64
	EnvZ     float64
}

func NewVortex(params map[string]float64) *Vortex {
	v := &Vortex{
		Strength: params["strength"],
		Axial:    params["axial"],
		Ripple:   params["ripple"],
		EnvX:     params["env_x"],
		EnvY:     params["env_y"],
		EnvZ:     params["env_z"],
	}
	if v.Strength == 0 {
		v.Strength = 1.0
	}
	if v.EnvX == 0 {
		v.EnvX = 18
	}
	if v.EnvY == 0 {
		v.EnvY = 10
	}
	if v.EnvZ == 0 {
		v.EnvZ = 3
	}
	if v.Ripple == 0 {
		v.Ripple = 6
	}
	return v
}

func (v *Vortex) Name() string { return "vortex" }

func (v *Vortex) Generate(g geom.Geometry) *field.Field {
	return build(g, func(x, y, z float64) field.Vec3 {
		env := math.Exp(-(x*x/v.EnvX + y*y/v.EnvY + z*z/v.EnvZ))
		return field.Vec3{
			U: -y * env * v.Strength,
			V: x * env * v.Strength,
			W: v.Axial * math.Sin(math.Pi*x/v.Ripple) * env,
		}
	})
}

// Shear is a horizontal flow whose speed varies across the y axis.
type Shear struct {
	Rate float64
	Base float64
}

func NewShear(params map[string]float64) *Shear {
	s := &Shear{Rate: params["rate"], Base: params["base"]}
	if s.Rate == 0 {
		s.Rate = 0.5
	}
	return s
}

func (s *Shear) Name() string { return "shear" }

func (s *Shear) Generate(g geom.Geometry) *field.Field {
	return build(g, func(x, y, z float64) field.Vec3 {
		return field.Vec3{U: s.Base + s.Rate*y}
	})
}

// Source is a radial outflow from the grid center. Strongly divergent
// everywhere, which makes it the hardest case for the corrector.
type Source struct {
	Strength float64
}

func NewSource(params map[string]float64) *Source {
	s := &Source{Strength: params["strength"]}
	if s.Strength == 0 {
		s.Strength = 4.0
	}
	return s
}

func (s *Source) Name() string { return "source" }

func (s *Source) Generate(g geom.Geometry) *field.Field {
	return build(g, func(x, y, z float64) field.Vec3 {
		r2 := x*x + y*y + z*z + 1
		return field.Vec3{
			U: s.Strength * x / r2,
			V: s.Strength * y / r2,
			W: s.Strength * z / r2,
		}
	})
}

// Uniform is a constant velocity everywhere. Divergence free by
// construction, useful as a do-no-harm check.
type Uniform struct {
	U, V, W float64
}

func NewUniform(params map[string]float64) *Uniform {
	u := &Uniform{U: params["u"], V: params["v"], W: params["w"]}
	if u.U == 0 && u.V == 0 && u.W == 0 {
		u.U = 1.0
	}
	return u
}

func (u *Uniform) Name() string { return "uniform" }

func (u *Uniform) Generate(g geom.Geometry) *field.Field {
	return build(g, func(x, y, z float64) field.Vec3 {
		return field.Vec3{U: u.U, V: u.V, W: u.W}
	})
}
