package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ShareBar shows one percentage share of a whole, such as a regime's part
// of the combined tax
type ShareBar struct {
	Label   string
	Percent decimal.Decimal // 0..100
	Width   int
	Color   lipgloss.Color
}

// NewShareBar creates a bar for a percentage
func NewShareBar(label string, percent decimal.Decimal) *ShareBar {
	return &ShareBar{
		Label:   label,
		Percent: percent,
		Width:   30,
		Color:   tuistyles.ColorSuccess,
	}
}

// WithWidth sets the bar width
func (s *ShareBar) WithWidth(width int) *ShareBar {
	s.Width = width
	return s
}

// WithColor sets the filled color
func (s *ShareBar) WithColor(color lipgloss.Color) *ShareBar {
	s.Color = color
	return s
}

// Filled is the number of filled cells, clamped to the width
func (s *ShareBar) Filled() int {
	if !s.Percent.IsPositive() || s.Width <= 0 {
		return 0
	}
	filled := int(s.Percent.Mul(decimal.NewFromInt(int64(s.Width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if filled > s.Width {
		filled = s.Width
	}
	return filled
}

// Render returns "Label [████░░░░] 55.5%"
func (s *ShareBar) Render() string {
	filled := s.Filled()

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Width(14).Render(s.Label))
	sb.WriteString(" [")
	sb.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render(strings.Repeat("█", filled)))
	sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", s.Width-filled)))
	sb.WriteString("] ")
	sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(s.Percent.StringFixed(1) + "%"))
	return sb.String()
}
