package geom

import "testing"

func grid3(nx, ny, nz int) Geometry {
	return Geometry{
		Dimensions: 3,
		Resolution: Resolution{Nx: nx, Ny: ny, Nz: nz},
		Spacing:    Spacing{Dx: 1, Dy: 1, Dz: 1},
	}
}

func grid2(nx, ny int) Geometry {
	return Geometry{
		Dimensions: 2,
		Resolution: Resolution{Nx: nx, Ny: ny},
		Spacing:    Spacing{Dx: 1, Dy: 1},
	}
}

func TestInterior(t *testing.T) {
	tests := []struct {
		name       string
		g          Geometry
		nx, ny, nz int
		exists     bool
	}{
		{"3d", grid3(18, 14, 6), 16, 12, 4, true},
		{"2d", grid2(48, 30), 46, 28, 1, true},
		{"2d minimal", grid2(3, 3), 1, 1, 1, true},
		{"flat x", grid2(2, 30), 0, 28, 1, false},
		{"flat y", grid3(10, 1, 10), 8, 0, 8, false},
		{"thin z", grid3(10, 10, 2), 8, 8, 0, false},
		{"single plane 3d", grid3(10, 10, 1), 8, 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.g.Interior()
			if in.Nx != tt.nx || in.Ny != tt.ny || in.Nz != tt.nz {
				t.Errorf("interior = %dx%dx%d, expected %dx%dx%d", in.Nx, in.Ny, in.Nz, tt.nx, tt.ny, tt.nz)
			}
			if in.Exists() != tt.exists {
				t.Errorf("Exists() = %v, expected %v", in.Exists(), tt.exists)
			}
		})
	}
}

func TestPlanes(t *testing.T) {
	if p := grid2(10, 10).Planes(); p != 1 {
		t.Errorf("2D planes = %d, expected 1", p)
	}
	if p := grid3(10, 10, 7).Planes(); p != 7 {
		t.Errorf("3D planes = %d, expected 7", p)
	}
	if c := grid2(48, 30).Cells(); c != 48*30 {
		t.Errorf("2D cells = %d, expected %d", c, 48*30)
	}
	if c := grid3(18, 14, 6).Cells(); c != 18*14*6 {
		t.Errorf("3D cells = %d, expected %d", c, 18*14*6)
	}
}

func TestIdxRowMajor(t *testing.T) {
	g := grid3(5, 4, 3)
	seen := make(map[int]bool)
	next := 0
	for k := 0; k < 3; k++ {
		for j := 0; j < 4; j++ {
			for i := 0; i < 5; i++ {
				m := g.Idx(i, j, k)
				if m != next {
					t.Fatalf("Idx(%d,%d,%d) = %d, expected %d", i, j, k, m, next)
				}
				if seen[m] {
					t.Fatalf("duplicate index %d", m)
				}
				seen[m] = true
				next++
			}
		}
	}
	if next != g.Cells() {
		t.Errorf("covered %d cells, expected %d", next, g.Cells())
	}
}
