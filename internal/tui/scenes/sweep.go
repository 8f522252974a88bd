package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/tui/components"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
)

// SweepModel shows both regimes' tax across an income range and where the
// cheaper regime changes
type SweepModel struct {
	points    []calculation.SweepPoint
	breakEven *breakeven.Result
	width     int
	height    int
}

// NewSweepModel creates an empty sweep scene
func NewSweepModel() *SweepModel {
	return &SweepModel{}
}

// SetResults replaces the sweep and break-even result
func (m *SweepModel) SetResults(points []calculation.SweepPoint, be *breakeven.Result) {
	m.points = points
	m.breakEven = be
}

// SetSize updates the scene dimensions
func (m *SweepModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; the sweep scene is read-only
func (m *SweepModel) Update(msg tea.Msg) (*SweepModel, tea.Cmd) {
	return m, nil
}

// View renders the chart with the break-even summary beneath
func (m *SweepModel) View() string {
	if len(m.points) == 0 {
		return tuistyles.BorderStyle.Render(
			"No sweep yet.\n\n" + tuistyles.SubtitleStyle.Render("Press ctrl+b on the form to chart tax across incomes."))
	}

	width := 72
	if m.width > 0 && m.width-6 < width {
		width = m.width - 6
	}
	chart := components.SweepChart(m.points).WithSize(width, 12)

	return lipgloss.JoinVertical(lipgloss.Left,
		chart.Render(),
		"",
		m.renderBreakEven(),
	)
}

func (m *SweepModel) renderBreakEven() string {
	be := m.breakEven
	if be == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render("Break-even"))
	sb.WriteString("\n")
	if be.BreakEvenIncome == nil {
		sb.WriteString(tuistyles.InfoStyle.Render(be.ConvergenceInfo))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%s is cheaper below %s, %s from there on\n",
		regimeName(string(be.CheaperBelow)),
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(*be.BreakEvenIncome)),
		regimeName(string(be.CheaperAbove))))
	sb.WriteString(tuistyles.SubtitleStyle.Render(be.ConvergenceInfo))
	return sb.String()
}

func regimeName(cheaper string) string {
	switch cheaper {
	case "old":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorOldRegime).Render("Old Regime")
	case "new":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorNewRegime).Render("New Regime")
	}
	return "Neither regime"
}
