// Package solver implements the conjugate-gradient Poisson solve at the
// heart of the flow corrector: Laplacian(phi) = divergence on interior
// cells, with the potential held at zero on the boundary ring.
package solver

import (
	"math"

	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/parallel"
)

const (
	DefaultIterations = 40

	// relative-residual stopping with an absolute floor:
	// tol = max(absTolFloor, relTol * |b|)
	relTol      = 1e-6
	absTolFloor = 1e-10
)

// Observer receives the residual norm after each completed CG
// iteration. Observers run on the calling goroutine at the join
// barrier; they must not block for long.
type Observer interface {
	OnIteration(iter int, residual float64)
}

// Options control one Poisson solve. Zero-value fields fall back to
// defaults (40 iterations, serial execution).
type Options struct {
	Iterations int
	Parallel   bool
	Observers  []Observer
}

// SolvePoisson solves the discrete Poisson equation on the interior
// cells of the grid and returns the potential embedded in a full-size
// volume whose boundary layer is fixed at zero.
//
// Grids too small to have a free interior return an all-zero potential
// immediately. Exhausting the iteration budget is not a failure either:
// the best partial estimate is returned. Callers needing tighter
// convergence supply a larger budget.
func SolvePoisson(div []float64, g geom.Geometry, opts Options) []float64 {
	full := make([]float64, g.Cells())
	in := g.Interior()
	if !in.Exists() {
		return full
	}

	iters := opts.Iterations
	if iters <= 0 {
		iters = DefaultIterations
	}

	n := in.Cells()
	kn := kernels{}
	if opts.Parallel && n > parallelThreshold {
		kn.pool = parallel.Shared()
	}

	// right-hand side: divergence restricted to interior cells
	b := make([]float64, n)
	kOff := 0
	if g.Is3D() {
		kOff = 1
	}
	for k := 0; k < in.Nz; k++ {
		for j := 0; j < in.Ny; j++ {
			for i := 0; i < in.Nx; i++ {
				b[in.Idx(i, j, k)] = div[g.Idx(i+1, j+1, k+kOff)]
			}
		}
	}

	phi := make([]float64, n)
	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)
	copy(r, b)
	copy(p, b)

	st := newStencil(in, g)
	rr := kn.dot(r, r)
	tol := math.Max(absTolFloor, relTol*math.Sqrt(rr))

	for it := 0; it < iters; it++ {
		if math.Sqrt(rr) < tol {
			break
		}

		kn.applyLaplacian(st, p, ap)

		pap := kn.dot(p, ap)
		alpha := 0.0
		if pap != 0 {
			alpha = rr / pap
		}

		kn.axpy(alpha, p, phi)
		kn.axpy(-alpha, ap, r)

		rrNew := kn.dot(r, r)
		beta := 0.0
		if rr != 0 {
			beta = rrNew / rr
		}
		kn.scaledAdd(beta, r, p)
		rr = rrNew

		for _, ob := range opts.Observers {
			ob.OnIteration(it, math.Sqrt(rr))
		}
	}

	for k := 0; k < in.Nz; k++ {
		for j := 0; j < in.Ny; j++ {
			for i := 0; i < in.Nx; i++ {
				full[g.Idx(i+1, j+1, k+kOff)] = phi[in.Idx(i, j, k)]
			}
		}
	}
	return full
}
