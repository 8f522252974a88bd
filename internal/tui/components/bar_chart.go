package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Bar is one row of a horizontal bar chart
type Bar struct {
	Label string
	Value decimal.Decimal
	Color lipgloss.Color
}

// BarChart draws labelled horizontal bars scaled to the largest value
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int // characters available for the longest bar
	LabelWidth int
}

// NewBarChart creates an empty chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40, LabelWidth: 14}
}

// FromPoints builds a chart from report chart points, cycling colors
func FromPoints(title string, points []output.ChartPoint, colors ...lipgloss.Color) *BarChart {
	c := NewBarChart(title)
	if len(colors) == 0 {
		colors = []lipgloss.Color{tuistyles.ColorPrimary}
	}
	for i, p := range points {
		c.AddBar(p.Label, p.Value, colors[i%len(colors)])
	}
	return c
}

// AddBar appends a bar
func (c *BarChart) AddBar(label string, value decimal.Decimal, color lipgloss.Color) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Color: color})
	return c
}

// WithWidth sets the longest bar length
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// BarLength scales value against max into [0, width]. Any positive value
// gets at least one cell.
func BarLength(value, max decimal.Decimal, width int) int {
	if !max.IsPositive() || !value.IsPositive() || width <= 0 {
		return 0
	}
	n := int(value.Div(max).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// Render returns the chart as styled text
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n")
	}

	max := decimal.Zero
	for _, b := range c.Bars {
		if b.Value.GreaterThan(max) {
			max = b.Value
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Width(c.LabelWidth)
	for _, b := range c.Bars {
		n := BarLength(b.Value, max, c.Width)
		sb.WriteString(labelStyle.Render(b.Label))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(b.Color).Render(strings.Repeat("█", n)))
		sb.WriteString(strings.Repeat(" ", c.Width-n+1))
		sb.WriteString(tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(b.Value)))
		sb.WriteString("\n")
	}
	return sb.String()
}
