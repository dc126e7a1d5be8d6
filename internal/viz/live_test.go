package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/geom"
)

func testModel() Model {
	g := geom.Geometry{
		Dimensions: 2,
		Resolution: geom.Resolution{Nx: 4, Ny: 4},
		Spacing:    geom.Spacing{Dx: 1, Dy: 1},
	}
	return NewModel("vortex", g, nil, corrector.Options{})
}

func TestObserverDropsSendsAfterQuit(t *testing.T) {
	quit := make(chan struct{})
	obs := chanObserver{ch: make(chan tea.Msg), quit: quit}
	close(quit)

	done := make(chan struct{})
	go func() {
		obs.OnIteration(3, 0.5)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("observer blocked with no reader after quit")
	}
}

func TestQuitKeyReleasesObserver(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}

	for i := 0; i < cap(m.ch); i++ {
		m.ch <- IterMsg{Iter: i}
	}
	obs := chanObserver{ch: m.ch, quit: m.quit}
	done := make(chan struct{})
	go func() {
		obs.OnIteration(99, 1e-3)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("observer blocked on a full channel after quit")
	}

	// release is idempotent
	m.release()
}
