// Package ops implements the central-difference differential operators
// the corrector is built from. All operators index edge neighbors with
// clamping to the nearest valid cell rather than wrapping or mirroring.
package ops

import (
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
)

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Divergence computes du/dx + dv/dy + dw/dz per cell via central
// differences with step 2*spacing, returning one scalar per cell in the
// same flat layout. The z term drops out on single-plane grids.
func Divergence(c *field.Components, g geom.Geometry) []float64 {
	nx, ny, nz := c.Nx, c.Ny, c.Nz
	dx2, dy2 := 2*g.Spacing.Dx, 2*g.Spacing.Dy
	var dz2 float64
	if nz > 1 {
		dz2 = 2 * g.Spacing.Dz
	}

	div := make([]float64, c.Cells())
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m := c.Idx(i, j, k)
				d := (c.U[c.Idx(clamp(i+1, nx), j, k)] - c.U[c.Idx(clamp(i-1, nx), j, k)]) / dx2
				d += (c.V[c.Idx(i, clamp(j+1, ny), k)] - c.V[c.Idx(i, clamp(j-1, ny), k)]) / dy2
				if nz > 1 {
					d += (c.W[c.Idx(i, j, clamp(k+1, nz))] - c.W[c.Idx(i, j, clamp(k-1, nz))]) / dz2
				}
				div[m] = d
			}
		}
	}
	return div
}
