package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one labelled amount, optionally with a delta against
// a reference amount
type MetricCard struct {
	Label       string
	Value       string
	Delta       *Delta
	Description string
	Width       int
	Highlight   bool
}

// Delta is a signed difference. For tax figures a negative delta is good.
type Delta struct {
	Amount        decimal.Decimal
	LowerIsBetter bool
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithDelta attaches a difference; zero deltas are not shown
func (m *MetricCard) WithDelta(amount decimal.Decimal, lowerIsBetter bool) *MetricCard {
	if amount.IsZero() {
		m.Delta = nil
		return m
	}
	m.Delta = &Delta{Amount: amount, LowerIsBetter: lowerIsBetter}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// WithHighlight draws the card border in the primary color
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

func (m *MetricCard) deltaText() string {
	if m.Delta == nil {
		return ""
	}
	up := m.Delta.Amount.IsPositive()
	good := up != m.Delta.LowerIsBetter
	return tuistyles.MetricTrendStyle(good).Render(
		tuistyles.TrendIndicator(up) + " " + tuistyles.FormatCurrency(m.Delta.Amount.Abs()))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaText(); d != "" {
		content += "\n" + d
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	border := tuistyles.ColorBorder
	if m.Highlight {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a single "Label: value" line without a border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaText(); d != "" {
		line += " " + d
	}
	return line
}

// MetricGrid lays cards out left to right, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
