package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/flowlab/internal/field"
)

// KineticEnergy sums 0.5*|v|^2 over every cell.
func KineticEnergy(c *field.Components) float64 {
	return 0.5 * (floats.Dot(c.U, c.U) + floats.Dot(c.V, c.V) + floats.Dot(c.W, c.W))
}

// MaxSpeed returns the largest per-cell speed in the field.
func MaxSpeed(c *field.Components) float64 {
	max := 0.0
	for m := range c.U {
		s := c.U[m]*c.U[m] + c.V[m]*c.V[m] + c.W[m]*c.W[m]
		if s > max {
			max = s
		}
	}
	return math.Sqrt(max)
}

// MeanSpeed averages per-cell speed over the whole field.
func MeanSpeed(c *field.Components) float64 {
	n := len(c.U)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for m := range c.U {
		sum += math.Sqrt(c.U[m]*c.U[m] + c.V[m]*c.V[m] + c.W[m]*c.W[m])
	}
	return sum / float64(n)
}
