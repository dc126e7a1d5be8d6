package corrector

import (
	"math"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/ops"
)

// Project subtracts the gradient of the potential from the velocity
// components in place, removing the curl-free part of the flow.
func Project(c *field.Components, phi []float64, g geom.Geometry) {
	grad := ops.Gradient(phi, g)
	for m := range c.U {
		c.U[m] -= grad.U[m]
		c.V[m] -= grad.V[m]
		c.W[m] -= grad.W[m]
	}
}

// EnforceBoundaries zeroes velocity on every perimeter cell. The z faces
// only exist on volumes with more than one plane.
func EnforceBoundaries(c *field.Components, g geom.Geometry) {
	nx, ny, nz := c.Nx, c.Ny, c.Nz
	zero := func(m int) {
		c.U[m] = 0
		c.V[m] = 0
		c.W[m] = 0
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			zero(c.Idx(0, j, k))
			zero(c.Idx(nx-1, j, k))
		}
		for i := 0; i < nx; i++ {
			zero(c.Idx(i, 0, k))
			zero(c.Idx(i, ny-1, k))
		}
	}
	if nz > 1 {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				zero(c.Idx(i, j, 0))
				zero(c.Idx(i, j, nz-1))
			}
		}
	}
}

// LimitEnergy rescales any cell whose speed exceeds the limit so that it
// sits exactly at the limit. Direction is preserved.
func LimitEnergy(c *field.Components, limit float64) {
	if limit <= 0 {
		return
	}
	for m := range c.U {
		speed := math.Sqrt(c.U[m]*c.U[m] + c.V[m]*c.V[m] + c.W[m]*c.W[m])
		if speed > limit {
			s := limit / speed
			c.U[m] *= s
			c.V[m] *= s
			c.W[m] *= s
		}
	}
}
