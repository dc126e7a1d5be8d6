package solver

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/parallel"
)

// parallelThreshold is the interior cell count below which the kernels
// run serially even when parallel mode is requested: dispatch overhead
// on small grids costs more than the extra cores return.
const parallelThreshold = 150000

// kernels bundles the vector primitives of one CG step. With a nil pool
// they run serially; otherwise each call fans out over chunked ranges
// on the pool and joins before returning, so the next kernel always
// reads fully materialized output.
type kernels struct {
	pool *parallel.Pool
}

func (kn kernels) dot(a, b []float64) float64 {
	if kn.pool == nil {
		return floats.Dot(a, b)
	}
	return kn.pool.MapReduce(len(a), func(start, end int) float64 {
		return floats.Dot(a[start:end], b[start:end])
	})
}

// axpy computes dst += alpha*x element-wise.
func (kn kernels) axpy(alpha float64, x, dst []float64) {
	if kn.pool == nil {
		floats.AddScaled(dst, alpha, x)
		return
	}
	kn.pool.For(len(x), func(start, end int) {
		floats.AddScaled(dst[start:end], alpha, x[start:end])
	})
}

// scaledAdd computes dst = x + beta*dst element-wise, the search
// direction update p = r + beta*p.
func (kn kernels) scaledAdd(beta float64, x, dst []float64) {
	if kn.pool == nil {
		scaledAddRange(beta, x, dst, 0, len(x))
		return
	}
	kn.pool.For(len(x), func(start, end int) {
		scaledAddRange(beta, x, dst, start, end)
	})
}

func scaledAddRange(beta float64, x, dst []float64, start, end int) {
	for i := start; i < end; i++ {
		dst[i] = x[i] + beta*dst[i]
	}
}

func (kn kernels) applyLaplacian(st stencil, p, out []float64) {
	if kn.pool == nil {
		st.applyRange(p, out, 0, len(p))
		return
	}
	kn.pool.For(len(p), func(start, end int) {
		st.applyRange(p, out, start, end)
	})
}

// stencil is the discrete Laplacian applied during CG: the exact
// composite of the central-difference divergence and gradient
// restricted to the interior lattice. Central differences step over
// 2*spacing, so each axis couples cells two apart with coefficient
// 1/(4*h^2); out-of-range neighbors sit in the zero-Dirichlet boundary
// ring and contribute nothing. Using the composite rather than the
// nearest-neighbor stencil is what lets the projection cancel the
// measured divergence instead of leaving an operator-mismatch floor.
type stencil struct {
	nx, ny, nz int
	cx, cy, cz float64
	diag       float64
	threeD     bool
}

func newStencil(in geom.Interior, g geom.Geometry) stencil {
	st := stencil{
		nx:     in.Nx,
		ny:     in.Ny,
		nz:     in.Nz,
		cx:     1 / (4 * g.Spacing.Dx * g.Spacing.Dx),
		cy:     1 / (4 * g.Spacing.Dy * g.Spacing.Dy),
		threeD: g.Is3D(),
	}
	st.diag = -2 * (st.cx + st.cy)
	if st.threeD {
		st.cz = 1 / (4 * g.Spacing.Dz * g.Spacing.Dz)
		st.diag -= 2 * st.cz
	}
	return st
}

// applyRange evaluates out[m] = (A p)[m] for m in [start, end). Indexing
// uses the interior buffer's own row and plane strides, not the full
// grid's.
func (st stencil) applyRange(p, out []float64, start, end int) {
	rowStride := st.nx
	planeStride := st.nx * st.ny
	for m := start; m < end; m++ {
		i := m % st.nx
		j := (m / st.nx) % st.ny
		k := m / planeStride

		s := st.diag * p[m]
		if i >= 2 {
			s += st.cx * p[m-2]
		}
		if i+2 < st.nx {
			s += st.cx * p[m+2]
		}
		if j >= 2 {
			s += st.cy * p[m-2*rowStride]
		}
		if j+2 < st.ny {
			s += st.cy * p[m+2*rowStride]
		}
		if st.threeD {
			if k >= 2 {
				s += st.cz * p[m-2*planeStride]
			}
			if k+2 < st.nz {
				s += st.cz * p[m+2*planeStride]
			}
		}
		out[m] = s
	}
}
