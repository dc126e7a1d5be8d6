package corrector

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/ops"
)

// confidenceScale maps the residual divergence onto the confidence
// score: a max divergence at or above this value scores zero.
const confidenceScale = 1e-2

// Residuals summarizes what remains after correction.
type Residuals struct {
	MaxDivergence float64 `json:"max_divergence" yaml:"max_divergence"`
	EnergyLimit   float64 `json:"energy_limit" yaml:"energy_limit"`
	Note          string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Diagnose recomputes divergence on the corrected components and derives
// the residual summary and confidence score from it.
func Diagnose(c *field.Components, g geom.Geometry, limit float64) (Residuals, float64) {
	div := ops.Divergence(c, g)
	maxDiv := 0.0
	if len(div) > 0 {
		maxDiv = floats.Norm(div, math.Inf(1))
	}
	res := Residuals{MaxDivergence: maxDiv, EnergyLimit: limit}
	return res, Confidence(maxDiv)
}

// Confidence converts a max divergence into a score in [0,1].
func Confidence(maxDiv float64) float64 {
	conf := 1 - maxDiv/confidenceScale
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
