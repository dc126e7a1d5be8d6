package field

import "github.com/san-kum/flowlab/internal/geom"

// Components holds each velocity component in one contiguous row-major
// buffer indexed i + nx*(j + ny*k). The nested representation is
// ergonomic at the API boundary but cache-hostile for iterative
// numerics; every kernel iterates over these buffers instead. A 2D
// field occupies a single z plane (Nz = 1).
type Components struct {
	U, V, W    []float64
	Nx, Ny, Nz int
}

func NewComponents(g geom.Geometry) *Components {
	n := g.Cells()
	return &Components{
		U:  make([]float64, n),
		V:  make([]float64, n),
		W:  make([]float64, n),
		Nx: g.Resolution.Nx,
		Ny: g.Resolution.Ny,
		Nz: g.Planes(),
	}
}

// Flatten canonicalizes f's velocity into flat component buffers. The
// caller's nested slices are copied, never aliased or mutated. No
// validation happens here; the geometry is assumed consistent with the
// field's shape.
func Flatten(f *Field, g geom.Geometry) *Components {
	c := NewComponents(g)
	m := 0
	if g.Is3D() {
		for k := 0; k < c.Nz; k++ {
			for j := 0; j < c.Ny; j++ {
				for i := 0; i < c.Nx; i++ {
					cell := f.Vel3[k][j][i]
					c.U[m], c.V[m], c.W[m] = cell.U, cell.V, cell.W
					m++
				}
			}
		}
		return c
	}
	for j := 0; j < c.Ny; j++ {
		for i := 0; i < c.Nx; i++ {
			cell := f.Vel2[j][i]
			c.U[m], c.V[m] = cell.U, cell.V
			m++
		}
	}
	return c
}

// Field converts the flat buffers back to the caller's nested shape:
// [z][y][x] for 3D geometries, [y][x] for 2D. This is the exact inverse
// of Flatten.
func (c *Components) Field(g geom.Geometry) *Field {
	if g.Is3D() {
		vol := make([][][]Vec3, c.Nz)
		m := 0
		for k := range vol {
			vol[k] = make([][]Vec3, c.Ny)
			for j := range vol[k] {
				row := make([]Vec3, c.Nx)
				for i := range row {
					row[i] = Vec3{U: c.U[m], V: c.V[m], W: c.W[m]}
					m++
				}
				vol[k][j] = row
			}
		}
		return &Field{Vel3: vol}
	}
	plane := make([][]Vec3, c.Ny)
	m := 0
	for j := range plane {
		row := make([]Vec3, c.Nx)
		for i := range row {
			row[i] = Vec3{U: c.U[m], V: c.V[m]}
			m++
		}
		plane[j] = row
	}
	return &Field{Vel2: plane}
}

// Idx maps (i,j,k) to the flat buffer index.
func (c *Components) Idx(i, j, k int) int {
	return i + c.Nx*(j+c.Ny*k)
}

func (c *Components) Cells() int { return c.Nx * c.Ny * c.Nz }
