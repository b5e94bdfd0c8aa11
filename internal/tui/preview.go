// Package tui is an interactive terminal preview of a phase portrait:
// pan and zoom the sampling window and step field parameters, re-rendering
// the braille field view on every change.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phaseflow/internal/eval"
	"github.com/san-kum/phaseflow/internal/fields"
	"github.com/san-kum/phaseflow/internal/norm"
	"github.com/san-kum/phaseflow/internal/phase"
	"github.com/san-kum/phaseflow/internal/viz"
)

const (
	canvasWidth  = 64
	canvasHeight = 20
	gridSamples  = 33
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Model holds the preview window, the system under inspection, and the
// last computed field.
type Model struct {
	sys       fields.System
	fieldName string
	args      []float64

	qMin, qMax float64
	pMin, pMax float64

	paramKeys []string
	selected  int

	view        string
	magMin      float64
	magMax      float64
	equilibria  int
	singular    int
	computeErr  error
	initialQMin float64
	initialQMax float64
	initialPMin float64
	initialPMax float64
}

// NewModel builds a preview over the given sampling window.
func NewModel(sys fields.System, fieldName string, args []float64, qMin, qMax, pMin, pMax float64) Model {
	keys := make([]string, 0, len(sys.GetParams()))
	for k := range sys.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := Model{
		sys:       sys,
		fieldName: fieldName,
		args:      args,
		qMin:      qMin, qMax: qMax,
		pMin: pMin, pMax: pMax,
		paramKeys:   keys,
		initialQMin: qMin, initialQMax: qMax,
		initialPMin: pMin, initialPMax: pMax,
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	stepQ := (m.qMax - m.qMin) * 0.1
	stepP := (m.pMax - m.pMin) * 0.1

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left":
		m.qMin -= stepQ
		m.qMax -= stepQ
	case "right":
		m.qMin += stepQ
		m.qMax += stepQ
	case "down":
		m.pMin -= stepP
		m.pMax -= stepP
	case "up":
		m.pMin += stepP
		m.pMax += stepP
	case "+", "=":
		m.zoom(0.8)
	case "-", "_":
		m.zoom(1.25)
	case "tab":
		if len(m.paramKeys) > 0 {
			m.selected = (m.selected + 1) % len(m.paramKeys)
		}
	case "[":
		m.stepParam(0.8)
	case "]":
		m.stepParam(1.25)
	case "r":
		m.qMin, m.qMax = m.initialQMin, m.initialQMax
		m.pMin, m.pMax = m.initialPMin, m.initialPMax
	default:
		return m, nil
	}

	m.recompute()
	return m, nil
}

func (m *Model) zoom(factor float64) {
	cq := (m.qMin + m.qMax) / 2
	cp := (m.pMin + m.pMax) / 2
	hq := (m.qMax - m.qMin) / 2 * factor
	hp := (m.pMax - m.pMin) / 2 * factor
	m.qMin, m.qMax = cq-hq, cq+hq
	m.pMin, m.pMax = cp-hp, cp+hp
}

func (m *Model) stepParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	name := m.paramKeys[m.selected]
	v := m.sys.GetParams()[name]
	if v == 0 {
		v = 0.1
	} else {
		v *= factor
	}
	_ = m.sys.SetParam(name, v)
}

func (m *Model) recompute() {
	g, err := phase.NewGrid(
		phase.Linspace(m.qMin, m.qMax, gridSamples),
		phase.Linspace(m.pMin, m.pMax, gridSamples),
	)
	if err != nil {
		m.computeErr = err
		return
	}
	s, err := eval.Evaluate(g, m.sys, m.args)
	if err != nil {
		m.computeErr = err
		return
	}
	f := norm.Normalize(s, norm.DefaultOptions())

	m.computeErr = nil
	m.view = viz.FieldToASCII(f, canvasWidth, canvasHeight)
	m.magMin, m.magMax = f.MagMin, f.MagMax
	m.equilibria, m.singular = 0, 0
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			switch {
			case f.IsSingular(row, col):
				m.singular++
			case f.IsEquilibrium(row, col):
				m.equilibria++
			}
		}
	}
}

func (m Model) View() string {
	var canvas string
	if m.computeErr != nil {
		canvas = errStyle.Render(m.computeErr.Error())
	} else {
		canvas = m.view
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(m.fieldName) + "\n")
	stats.WriteString(row("q window", fmt.Sprintf("[%.2f, %.2f]", m.qMin, m.qMax)))
	stats.WriteString(row("p window", fmt.Sprintf("[%.2f, %.2f]", m.pMin, m.pMax)))
	stats.WriteString(row("|v| bounds", fmt.Sprintf("%.3g .. %.3g", m.magMin, m.magMax)))
	stats.WriteString(row("equilibria", fmt.Sprintf("%d", m.equilibria)))
	stats.WriteString(row("singular", fmt.Sprintf("%d", m.singular)))

	if len(m.paramKeys) > 0 {
		stats.WriteString("\n" + headerStyle.Render("params") + "\n")
		params := m.sys.GetParams()
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%s = %.4g", k, params[k])
			if i == m.selected {
				stats.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				stats.WriteString(valueStyle.Render("  "+line) + "\n")
			}
		}
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(canvas),
		statsStyle.Render(stats.String()),
	)
	help := helpStyle.Render("arrows pan · +/- zoom · tab select param · [/] adjust · r reset window · q quit")
	return main + "\n" + help + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
