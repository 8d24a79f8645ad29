// Package viz is a terminal front end: a bubbletea program that steps the
// engine on a fixed tick and renders a side view of the dam plus a
// kinetic-energy graph.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/fluidlab/damsim/internal/engine"
	"github.com/fluidlab/damsim/internal/scene"
)

const (
	canvasWidth     = 64
	canvasHeight    = 22
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea model wrapping a running engine.
type Model struct {
	eng    *engine.Engine
	params scene.Params

	energyHistory []float64
	fps           int
}

func NewModel(eng *engine.Engine, params scene.Params, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		eng:           eng,
		params:        params,
		energyHistory: make([]float64, 0, historyCapacity),
		fps:           fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.eng.Paused = !m.eng.Paused
		case "r":
			m.eng.Reset()
			m.energyHistory = m.energyHistory[:0]
		}
	case TickMsg:
		m.eng.Frame()
		m.energyHistory = append(m.energyHistory, m.eng.Model().KineticEnergy())
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	canvas := canvasStyle.Render(m.renderSideView())

	var s strings.Builder
	s.WriteString(headerStyle.Render("DAMSIM") + "\n")
	status := "RUNNING"
	if m.eng.Paused {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(5),
			asciigraph.Width(32),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	mdl := m.eng.Model()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.eng.Clock().Time())) + "\n")
	s.WriteString(labelStyle.Render("Fluid") + valueStyle.Render(fmt.Sprintf("%d", mdl.Count())) + "\n")
	s.WriteString(labelStyle.Render("Boundary") + valueStyle.Render(fmt.Sprintf("%d", mdl.BoundaryCount())) + "\n")
	s.WriteString(labelStyle.Render("Max |v|") + valueStyle.Render(fmt.Sprintf("%.3f", mdl.MaxSpeed())) + "\n")
	s.WriteString(helpStyle.Render("SPACE:pause  R:reset  Q:quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(s.String()))
}

// renderSideView projects the fluid onto the x/y plane and shades cells by
// particle count.
func (m Model) renderSideView() string {
	cw := m.params.ContainerWidth()
	ch := m.params.ContainerHeight

	counts := make([]int, canvasWidth*canvasHeight)
	for _, p := range m.eng.Model().Positions() {
		cx := int((p.X() + cw/2) / cw * float64(canvasWidth))
		cy := int(p.Y() / ch * float64(canvasHeight))
		if cx < 0 || cx >= canvasWidth || cy < 0 || cy >= canvasHeight {
			continue
		}
		counts[cy*canvasWidth+cx]++
	}

	shades := []rune{' ', '·', 'o', 'O', '@'}
	var b strings.Builder
	for row := canvasHeight - 1; row >= 0; row-- {
		b.WriteRune('|')
		for col := 0; col < canvasWidth; col++ {
			n := counts[row*canvasWidth+col]
			idx := n
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			b.WriteRune(shades[idx])
		}
		b.WriteString("|\n")
	}
	b.WriteRune('+')
	b.WriteString(strings.Repeat("-", canvasWidth))
	b.WriteRune('+')
	return b.String()
}

// Run starts the TUI and blocks until the user quits.
func Run(eng *engine.Engine, params scene.Params, fps int) error {
	p := tea.NewProgram(NewModel(eng, params, fps))
	_, err := p.Run()
	return err
}
