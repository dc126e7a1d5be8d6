// Package viz renders a correction run live in the terminal: the CG
// residual curve as it falls, plus a stats panel once the run finishes.
package viz

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/metrics"
)

const chartWidth = 60

type IterMsg struct {
	Iter     int
	Residual float64
}

type DoneMsg struct {
	Result *corrector.Result
	Err    error
}

// chanObserver forwards solver iterations into the bubbletea loop.
// Once quit closes, sends are dropped so the solver goroutine never
// blocks on a view that stopped reading.
type chanObserver struct {
	ch   chan tea.Msg
	quit chan struct{}
}

func (o chanObserver) OnIteration(iter int, residual float64) {
	select {
	case o.ch <- IterMsg{Iter: iter, Residual: residual}:
	case <-o.quit:
	}
}

type Model struct {
	surrogate string
	g         geom.Geometry
	f         *field.Field
	opts      corrector.Options

	ch        chan tea.Msg
	quit      chan struct{}
	stop      *sync.Once
	residuals []float64
	iter      int
	result    *corrector.Result
	err       error
	done      bool
}

func NewModel(surrogate string, g geom.Geometry, f *field.Field, opts corrector.Options) Model {
	return Model{
		surrogate: surrogate,
		g:         g,
		f:         f,
		opts:      opts,
		ch:        make(chan tea.Msg, 64),
		quit:      make(chan struct{}),
		stop:      &sync.Once{},
	}
}

// release unblocks the solver goroutine; safe to call more than once.
func (m Model) release() {
	m.stop.Do(func() { close(m.quit) })
}

func (m Model) Init() tea.Cmd {
	ch, quit := m.ch, m.quit
	opts := m.opts
	opts.Observers = append(opts.Observers, chanObserver{ch: ch, quit: quit})
	g, f := m.g, m.f
	go func() {
		res, err := corrector.Correct(g, f, opts)
		select {
		case ch <- DoneMsg{Result: res, Err: err}:
		case <-quit:
		}
	}()
	return waitForMsg(ch)
}

func waitForMsg(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			m.release()
			return m, tea.Quit
		}
	case IterMsg:
		m.iter = msg.Iter + 1
		m.residuals = append(m.residuals, msg.Residual)
		return m, waitForMsg(m.ch)
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("flowlab  %s  %s", m.surrogate, describe(m.g))))
	b.WriteString("\n")

	if len(m.residuals) > 0 {
		chart := asciigraph.Plot(m.residuals,
			asciigraph.Height(8),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("CG residual"))
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}

	b.WriteString(m.statsView())
	if m.done {
		b.WriteString(helpStyle.Render("q quit"))
	} else {
		b.WriteString(helpStyle.Render("solving... q abort"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) statsView() string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, labelStyle.Render(label)+valueStyle.Render(value))
	}

	row("iterations", fmt.Sprintf("%d", m.iter))
	if n := len(m.residuals); n > 0 {
		row("residual", fmt.Sprintf("%.3e", m.residuals[n-1]))
	}

	if m.done {
		if m.err != nil {
			rows = append(rows, warnStyle.Render("error: "+m.err.Error()))
		} else {
			res := m.result
			row("max divergence", fmt.Sprintf("%.3e", res.Residuals.MaxDivergence))
			row("energy limit", fmt.Sprintf("%.1f", res.Residuals.EnergyLimit))
			if res.Field.HasVelocity() {
				c := field.Flatten(res.Field, m.g)
				row("max speed", fmt.Sprintf("%.3f", metrics.MaxSpeed(c)))
				row("kinetic energy", fmt.Sprintf("%.3f", metrics.KineticEnergy(c)))
			}
			conf := fmt.Sprintf("%.3f", res.Confidence)
			if res.Confidence >= 0.9 {
				rows = append(rows, labelStyle.Render("confidence")+goodStyle.Render(conf))
			} else {
				rows = append(rows, labelStyle.Render("confidence")+warnStyle.Render(conf))
			}
			if res.Residuals.Note != "" {
				row("note", res.Residuals.Note)
			}
		}
	}

	return statsStyle.Render(strings.Join(rows, "\n")) + "\n"
}

func describe(g geom.Geometry) string {
	if g.Is3D() {
		return fmt.Sprintf("%dx%dx%d", g.Resolution.Nx, g.Resolution.Ny, g.Resolution.Nz)
	}
	return fmt.Sprintf("%dx%d", g.Resolution.Nx, g.Resolution.Ny)
}

// RunLive drives the full correction under the live view and returns
// the result once the program exits.
func RunLive(surrogate string, g geom.Geometry, f *field.Field, opts corrector.Options) (*corrector.Result, error) {
	model := NewModel(surrogate, g, f, opts)
	defer model.release()
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
