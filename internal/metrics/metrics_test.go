package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
)

func TestConvergence(t *testing.T) {
	c := NewConvergence()
	if c.Iterations() != 0 {
		t.Fatal("fresh metric not zero")
	}
	c.OnIteration(0, 1.0)
	c.OnIteration(1, 0.1)
	c.OnIteration(2, 0.01)

	if c.Iterations() != 3 {
		t.Errorf("iterations = %d", c.Iterations())
	}
	if c.Residual() != 0.01 {
		t.Errorf("residual = %g", c.Residual())
	}
	if c.Value() != 3 {
		t.Errorf("value = %g", c.Value())
	}

	c.Reset()
	if c.Iterations() != 0 || c.Residual() != 0 {
		t.Error("reset did not clear the metric")
	}
}

func TestResidualHistory(t *testing.T) {
	h := NewResidualHistory()
	for i, r := range []float64{2.0, 0.5, 0.125} {
		h.OnIteration(i, r)
	}
	got := h.History()
	if len(got) != 3 || got[0] != 2.0 || got[2] != 0.125 {
		t.Errorf("history = %v", got)
	}
	if h.Value() != 0.125 {
		t.Errorf("value = %g", h.Value())
	}
	h.Reset()
	if len(h.History()) != 0 || h.Value() != 0 {
		t.Error("reset did not clear the history")
	}
}

func TestFlowMetrics(t *testing.T) {
	g := geom.Geometry{
		Dimensions: 2,
		Resolution: geom.Resolution{Nx: 2, Ny: 2},
		Spacing:    geom.Spacing{Dx: 1, Dy: 1},
	}
	c := field.NewComponents(g)
	c.U[0], c.V[0] = 3, 4 // speed 5
	c.U[1] = 1

	if got := MaxSpeed(c); got != 5 {
		t.Errorf("MaxSpeed = %g", got)
	}
	if got := KineticEnergy(c); got != 13 {
		t.Errorf("KineticEnergy = %g", got) // 0.5*(9+16+1)
	}
	want := (5.0 + 1.0) / 4.0
	if got := MeanSpeed(c); math.Abs(got-want) > 1e-12 {
		t.Errorf("MeanSpeed = %g, want %g", got, want)
	}
}
