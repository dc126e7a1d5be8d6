package ops

import (
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
)

// Gradient computes the central-difference gradient of a scalar
// potential, the adjoint shape of Divergence: same clamping policy,
// same step, producing one vector per cell. The z component stays zero
// on single-plane grids.
func Gradient(phi []float64, g geom.Geometry) *field.Components {
	c := field.NewComponents(g)
	nx, ny, nz := c.Nx, c.Ny, c.Nz
	dx2, dy2 := 2*g.Spacing.Dx, 2*g.Spacing.Dy
	var dz2 float64
	if nz > 1 {
		dz2 = 2 * g.Spacing.Dz
	}

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m := c.Idx(i, j, k)
				c.U[m] = (phi[c.Idx(clamp(i+1, nx), j, k)] - phi[c.Idx(clamp(i-1, nx), j, k)]) / dx2
				c.V[m] = (phi[c.Idx(i, clamp(j+1, ny), k)] - phi[c.Idx(i, clamp(j-1, ny), k)]) / dy2
				if nz > 1 {
					c.W[m] = (phi[c.Idx(i, j, clamp(k+1, nz))] - phi[c.Idx(i, j, clamp(k-1, nz))]) / dz2
				}
			}
		}
	}
	return c
}
