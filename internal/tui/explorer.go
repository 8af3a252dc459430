package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bifurcation/internal/analysis"
	"github.com/san-kum/bifurcation/internal/dynamo"
	"github.com/san-kum/bifurcation/internal/viz"
)

const (
	panFraction = 0.1
	zoomFactor  = 0.5
	minSpan     = 1e-9
	minWidth    = 10
	minHeight   = 4
)

// Explorer is an interactive bifurcation viewer. Every change of the
// parameter window re-runs the sweep at one parameter per horizontal dot.
type Explorer struct {
	cfg     analysis.SweepConfig
	workers int

	homeMin, homeMax float64
	rMin, rMax       float64

	width, height int
	points        []dynamo.Point
	computing     bool
	err           error
	seq           int
}

type sweepDoneMsg struct {
	seq    int
	points []dynamo.Point
	err    error
}

func NewExplorer(cfg analysis.SweepConfig, rMin, rMax float64, workers int) Explorer {
	return Explorer{
		cfg:     cfg,
		workers: workers,
		homeMin: rMin, homeMax: rMax,
		rMin: rMin, rMax: rMax,
		width: 80, height: 20,
		computing: true,
	}
}

// Window returns the parameter range currently on screen.
func (m Explorer) Window() (float64, float64) { return m.rMin, m.rMax }

func (m Explorer) Points() []dynamo.Point { return m.points }

func (m Explorer) Err() error { return m.err }

func (m Explorer) Init() tea.Cmd { return m.sweep() }

func (m Explorer) sweep() tea.Cmd {
	cfg, workers, seq := m.cfg, m.workers, m.seq
	lo, hi, n := m.rMin, m.rMax, m.width*2
	return func() tea.Msg {
		rs, err := analysis.Linspace(lo, hi, n)
		if err != nil {
			return sweepDoneMsg{seq: seq, err: err}
		}
		points, err := analysis.Sweep(context.Background(), cfg, rs, workers)
		return sweepDoneMsg{seq: seq, points: points, err: err}
	}
}

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, minWidth)
		m.height = max(msg.Height-7, minHeight)
		return m.refresh()
	case sweepDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.points, m.err, m.computing = msg.points, msg.err, false
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	span := m.rMax - m.rMin
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.rMin, m.rMax = m.rMin-span*panFraction, m.rMax-span*panFraction
	case "right", "l":
		m.rMin, m.rMax = m.rMin+span*panFraction, m.rMax+span*panFraction
	case "+", "=", "up", "k":
		m.zoom(zoomFactor)
	case "-", "_", "down", "j":
		m.zoom(1 / zoomFactor)
	case "r":
		m.rMin, m.rMax = m.homeMin, m.homeMax
	default:
		return m, nil
	}
	return m.refresh()
}

func (m *Explorer) zoom(factor float64) {
	center := (m.rMin + m.rMax) / 2
	half := (m.rMax - m.rMin) * factor / 2
	if half < minSpan/2 {
		half = minSpan / 2
	}
	m.rMin, m.rMax = center-half, center+half
}

func (m Explorer) refresh() (tea.Model, tea.Cmd) {
	m.seq++
	m.computing = true
	return m, m.sweep()
}

func (m Explorer) View() string {
	var b strings.Builder
	b.WriteString(viz.Title.Render(strings.ToUpper(m.cfg.Map.Name())+" MAP") + "  ")
	b.WriteString(viz.Metric("r", fmt.Sprintf("[%.6f, %.6f]", m.rMin, m.rMax)) + "  ")
	b.WriteString(viz.Metric("points", len(m.points)))
	if m.computing {
		b.WriteString("  " + viz.Subtle.Render("computing..."))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(viz.Failure.Render("sweep failed: "+m.err.Error()) + "\n")
	} else {
		b.WriteString(viz.Panel.Render(strings.TrimSuffix(viz.Preview(m.points, m.width, m.height), "\n")) + "\n")
	}

	b.WriteString(viz.KeyHint.Render("h/l pan  +/- zoom  r reset  q quit") + "\n")
	return b.String()
}

// Run starts the explorer in the alternate screen and blocks until it exits.
func Run(m Explorer) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
