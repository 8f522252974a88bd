package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // x-axis labels, one per point
	Width      int
	Height     int
	XAxisLabel string
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  60,
		Height: 12,
	}
}

// SweepChart plots both regimes' tax across the incomes of a sweep
func SweepChart(points []calculation.SweepPoint) *ASCIIChart {
	oldTax := make([]float64, len(points))
	newTax := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		oldTax[i] = p.OldTax.InexactFloat64()
		newTax[i] = p.NewTax.InexactFloat64()
		labels[i] = FormatAxisValue(p.GrossIncome.InexactFloat64())
	}
	return NewASCIIChart("Tax payable by gross income").
		AddSeries("Old Regime", oldTax, tuistyles.ColorOldRegime).
		AddSeries("New Regime", newTax, tuistyles.ColorNewRegime).
		WithLabels(labels).
		WithXAxisLabel("Gross income")
}

// AddSeries adds a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel names the x axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the chart with axes and a legend
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	sb.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
		sb.WriteString("\n")
	}
	if len(c.Series) > 1 {
		sb.WriteString("\n")
		sb.WriteString(c.renderLegend())
	}
	return sb.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

// bounds returns the plotted range. Tax is never negative, so the floor is
// zero; a flat series still gets a non-empty range.
func (c *ASCIIChart) bounds() (float64, float64) {
	hi := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			hi = math.Max(hi, p)
		}
	}
	if hi == 0 {
		hi = 1
	}
	return 0, hi * 1.05
}

// Cell maps a point onto grid coordinates
func (c *ASCIIChart) Cell(index, count int, value, lo, hi float64, plotWidth int) (int, int) {
	x := 0
	if count > 1 {
		x = int(math.Round(float64(index) / float64(count-1) * float64(plotWidth-1)))
	}
	y := c.Height - 1 - int(math.Round((value-lo)/(hi-lo)*float64(c.Height-1)))
	return x, y
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	const axisWidth = 9
	plotWidth := c.Width - axisWidth - 3
	if plotWidth < 2 {
		plotWidth = 2
	}

	grid := make([][]string, c.Height)
	for i := range grid {
		grid[i] = make([]string, plotWidth)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for idx, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(idx)))
		for i, v := range s.Points {
			x, y := c.Cell(i, len(s.Points), v, lo, hi, plotWidth)
			if y >= 0 && y < c.Height && x >= 0 && x < plotWidth {
				grid[y][x] = mark
			}
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(axisWidth).Align(lipgloss.Right)
	var sb strings.Builder
	for i, row := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			label = FormatAxisValue(hi - float64(i)/float64(c.Height-1)*(hi-lo))
		}
		sb.WriteString(axisStyle.Render(label))
		sb.WriteString(" │ ")
		sb.WriteString(strings.Join(row, ""))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", axisWidth))
	sb.WriteString(" └")
	sb.WriteString(strings.Repeat("─", plotWidth+1))
	sb.WriteString("\n")

	if len(c.Labels) > 0 {
		first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
		gap := plotWidth + 1 - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		sb.WriteString(strings.Repeat(" ", axisWidth+3))
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(first + strings.Repeat(" ", gap) + last))
		sb.WriteString("\n")
	}
	return sb.String()
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// FormatAxisValue abbreviates rupees in crores (Cr), lakhs (L) or thousands (K)
func FormatAxisValue(value float64) string {
	switch abs := math.Abs(value); {
	case abs >= 1e7:
		return fmt.Sprintf("₹%.1fCr", value/1e7)
	case abs >= 1e5:
		return fmt.Sprintf("₹%.1fL", value/1e5)
	case abs >= 1e3:
		return fmt.Sprintf("₹%.0fK", value/1e3)
	}
	return fmt.Sprintf("₹%.0f", value)
}
