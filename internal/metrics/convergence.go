// Package metrics collects solver and flow statistics. Solver metrics
// attach to the Poisson solve as observers; flow metrics evaluate a
// flattened field directly.
package metrics

type Metric interface {
	Name() string
	OnIteration(iter int, residual float64)
	Value() float64
	Reset()
}

// Convergence tracks how many iterations the solve took and the final
// residual it reached.
type Convergence struct {
	name       string
	iterations int
	residual   float64
}

func NewConvergence() *Convergence {
	return &Convergence{name: "convergence"}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) OnIteration(iter int, residual float64) {
	c.iterations = iter + 1
	c.residual = residual
}

// Value reports the iteration count. Residual() has the final residual.
func (c *Convergence) Value() float64 { return float64(c.iterations) }

func (c *Convergence) Residual() float64 { return c.residual }

func (c *Convergence) Iterations() int { return c.iterations }

func (c *Convergence) Reset() {
	c.iterations = 0
	c.residual = 0
}

// ResidualHistory keeps the residual at every iteration, for plotting.
type ResidualHistory struct {
	name    string
	history []float64
}

func NewResidualHistory() *ResidualHistory {
	return &ResidualHistory{name: "residual-history"}
}

func (r *ResidualHistory) Name() string { return r.name }

func (r *ResidualHistory) OnIteration(iter int, residual float64) {
	r.history = append(r.history, residual)
}

func (r *ResidualHistory) Value() float64 {
	if len(r.history) == 0 {
		return 0
	}
	return r.history[len(r.history)-1]
}

func (r *ResidualHistory) History() []float64 { return r.history }

func (r *ResidualHistory) Reset() { r.history = nil }
