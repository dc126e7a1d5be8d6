package field

// Vec3 is one cell's velocity sample. W stays zero on 2D grids.
type Vec3 struct {
	U, V, W float64
}

// Field is the caller-facing flow field. Velocity-carrying fields set
// exactly one of Vel3/Vel2, matching the geometry's dimensionality,
// indexed [z][y][x] (respectively [y][x]). A field carrying only scalar
// data (for example a plume concentration) is a valid degenerate input:
// the corrector passes it through untouched.
type Field struct {
	Vel3    [][][]Vec3
	Vel2    [][]Vec3
	Scalar3 [][][]float64
	Scalar2 [][]float64
}

// HasVelocity reports whether f carries a velocity component. Scalar-only
// fields bypass numerical correction entirely.
func (f *Field) HasVelocity() bool {
	return f != nil && (f.Vel3 != nil || f.Vel2 != nil)
}
