package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bifurcation/internal/analysis"
	"github.com/san-kum/bifurcation/internal/dynamo"
	"github.com/san-kum/bifurcation/internal/maps"
)

func newTestExplorer() Explorer {
	cfg := analysis.SweepConfig{Map: maps.Logistic.Map(), X0: 0.5, Skip: 50, Samples: 5}
	m := NewExplorer(cfg, 2.8, 4.0, 2)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 24, Height: 17})
	return settle(updated.(Explorer))
}

// settle runs the pending sweep synchronously and feeds the result back.
func settle(m Explorer) Explorer {
	msg := m.sweep()()
	updated, _ := m.Update(msg)
	return updated.(Explorer)
}

func press(m Explorer, key tea.KeyMsg) (Explorer, tea.Cmd) {
	updated, cmd := m.Update(key)
	return updated.(Explorer), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestExplorer_InitialSweep(t *testing.T) {
	m := newTestExplorer()
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	// 20 cells wide -> 40 parameters, 5 samples each
	if got := len(m.Points()); got != 40*5 {
		t.Errorf("expected 200 points, got %d", got)
	}
	if m.computing {
		t.Error("explorer should be idle after the sweep returns")
	}
}

func TestExplorer_Zoom(t *testing.T) {
	m := newTestExplorer()

	m, cmd := press(m, runes("+"))
	if cmd == nil {
		t.Fatal("zoom should trigger a sweep")
	}
	lo, hi := m.Window()
	if !approx(lo, 3.1) || !approx(hi, 3.7) {
		t.Errorf("zoom in: got [%v, %v], want [3.1, 3.7]", lo, hi)
	}

	m, _ = press(m, runes("-"))
	lo, hi = m.Window()
	if !approx(lo, 2.8) || !approx(hi, 4.0) {
		t.Errorf("zoom out: got [%v, %v], want [2.8, 4.0]", lo, hi)
	}
}

func TestExplorer_PanAndReset(t *testing.T) {
	m := newTestExplorer()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	lo, hi := m.Window()
	if !approx(lo, 2.92) || !approx(hi, 4.12) {
		t.Errorf("pan right: got [%v, %v]", lo, hi)
	}

	m, _ = press(m, runes("h"))
	m, _ = press(m, runes("h"))
	lo, _ = m.Window()
	if !approx(lo, 2.68) {
		t.Errorf("pan left: got lo=%v", lo)
	}

	m, _ = press(m, runes("r"))
	lo, hi = m.Window()
	if lo != 2.8 || hi != 4.0 {
		t.Errorf("reset: got [%v, %v]", lo, hi)
	}
}

func TestExplorer_DropsStaleResults(t *testing.T) {
	m := newTestExplorer()
	stale := m.sweep()

	m, _ = press(m, runes("+"))
	before := len(m.Points())
	updated, _ := m.Update(stale())
	m = updated.(Explorer)
	if !m.computing || len(m.Points()) != before {
		t.Error("stale sweep result should be ignored")
	}
}

func TestExplorer_ShowsErrors(t *testing.T) {
	cfg := analysis.SweepConfig{
		Map:     dynamo.MapFunc{Label: "broken", Fn: func(x, r float64) float64 { panic("nope") }},
		Samples: 1,
	}
	m := settle(NewExplorer(cfg, 0, 1, 1))
	if m.Err() == nil {
		t.Fatal("expected sweep error")
	}
	if !strings.Contains(m.View(), "sweep failed") {
		t.Error("view should report the failure")
	}
}

func TestExplorer_Quit(t *testing.T) {
	m := newTestExplorer()
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestExplorer_View(t *testing.T) {
	view := newTestExplorer().View()
	if !strings.Contains(view, "LOGISTIC MAP") {
		t.Errorf("missing title in view:\n%s", view)
	}
	if !strings.Contains(view, "q quit") {
		t.Error("missing key hints")
	}
}
