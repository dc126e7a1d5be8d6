package geom

// Resolution is the cell count along each axis. Nz is absent for 2D grids.
type Resolution struct {
	Nx int `yaml:"nx" json:"nx"`
	Ny int `yaml:"ny" json:"ny"`
	Nz int `yaml:"nz,omitempty" json:"nz,omitempty"`
}

// Spacing is the physical cell size along each axis.
type Spacing struct {
	Dx float64 `yaml:"dx" json:"dx"`
	Dy float64 `yaml:"dy" json:"dy"`
	Dz float64 `yaml:"dz,omitempty" json:"dz,omitempty"`
}

type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z,omitempty" json:"z,omitempty"`
}

// Geometry describes an axis-aligned Cartesian grid. It is consumed
// read-only and assumed already validated upstream (config.Validate);
// the numeric core never re-checks it.
type Geometry struct {
	Dimensions int        `yaml:"dimensions" json:"dimensions"`
	Resolution Resolution `yaml:"resolution" json:"resolution"`
	Spacing    Spacing    `yaml:"spacing" json:"spacing"`
	Origin     Point      `yaml:"origin,omitempty" json:"origin,omitempty"`
	Extent     Point      `yaml:"extent,omitempty" json:"extent,omitempty"`
}

func (g Geometry) Is3D() bool { return g.Dimensions == 3 }

// Planes is the canonical z plane count: 1 for 2D grids, Nz for 3D.
// Every kernel loops over planes uniformly, so 2D and 3D share one
// code path.
func (g Geometry) Planes() int {
	if !g.Is3D() {
		return 1
	}
	return g.Resolution.Nz
}

// Cells is the total cell count of the canonical volume.
func (g Geometry) Cells() int {
	return g.Resolution.Nx * g.Resolution.Ny * g.Planes()
}

// Idx maps (i,j,k) to the row-major flat index i + nx*(j + ny*k).
func (g Geometry) Idx(i, j, k int) int {
	return i + g.Resolution.Nx*(j+g.Resolution.Ny*k)
}

// Interior is the lattice of free unknowns for the Poisson solve: cells
// strictly inside the boundary ring. The single plane of a 2D grid
// counts as interior in z.
type Interior struct {
	Nx, Ny, Nz int
}

func (g Geometry) Interior() Interior {
	in := Interior{
		Nx: max(0, g.Resolution.Nx-2),
		Ny: max(0, g.Resolution.Ny-2),
		Nz: 1,
	}
	if g.Is3D() {
		in.Nz = max(0, g.Resolution.Nz-2)
	}
	return in
}

// Exists reports whether the grid has any free interior cells. Grids
// with an axis of two or fewer cells have none; the solver treats that
// as a defined degenerate case, not a failure.
func (in Interior) Exists() bool {
	return in.Nx > 0 && in.Ny > 0 && in.Nz > 0
}

func (in Interior) Cells() int { return in.Nx * in.Ny * in.Nz }

// Idx maps interior coordinates to the interior buffer's own row-major
// index, which uses the interior strides rather than the full-grid ones.
func (in Interior) Idx(i, j, k int) int {
	return i + in.Nx*(j+in.Ny*k)
}
