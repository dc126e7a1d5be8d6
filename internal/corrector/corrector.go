// Package corrector removes spurious divergence from velocity fields by
// Helmholtz-Hodge projection: solve a Poisson equation for a scalar
// potential whose gradient carries the compressible part of the flow,
// subtract it, then enforce closed boundaries and an energy ceiling.
package corrector

import (
	"fmt"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/ops"
	"github.com/san-kum/flowlab/internal/solver"
)

const (
	// DefaultIterations bounds the Poisson solve.
	DefaultIterations = solver.DefaultIterations
	// DefaultEnergyLimit caps per-cell speed after projection.
	DefaultEnergyLimit = 75.0
)

// Options tunes a correction run. The zero value uses the defaults.
type Options struct {
	Iterations  int
	EnergyLimit float64
	Parallel    bool
	Observers   []solver.Observer
}

// Result carries the corrected field plus the diagnostics of the run.
type Result struct {
	Field      *field.Field
	Residuals  Residuals
	Confidence float64
}

// Correct runs the full projection pipeline on a field. Scalar-only
// fields pass through untouched. The input field is never mutated.
func Correct(g geom.Geometry, f *field.Field, opts Options) (*Result, error) {
	if f == nil {
		return nil, fmt.Errorf("corrector: nil field")
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.EnergyLimit <= 0 {
		opts.EnergyLimit = DefaultEnergyLimit
	}

	if !f.HasVelocity() {
		return &Result{
			Field: f,
			Residuals: Residuals{
				EnergyLimit: opts.EnergyLimit,
				Note:        "no-velocity-field",
			},
			Confidence: 1.0,
		}, nil
	}

	c := field.Flatten(f, g)

	div := ops.Divergence(c, g)
	phi := solver.SolvePoisson(div, g, solver.Options{
		Iterations: opts.Iterations,
		Parallel:   opts.Parallel,
		Observers:  opts.Observers,
	})
	Project(c, phi, g)
	EnforceBoundaries(c, g)
	LimitEnergy(c, opts.EnergyLimit)

	res, conf := Diagnose(c, g, opts.EnergyLimit)

	out := c.Field(g)
	out.Scalar3 = f.Scalar3
	out.Scalar2 = f.Scalar2

	return &Result{Field: out, Residuals: res, Confidence: conf}, nil
}
