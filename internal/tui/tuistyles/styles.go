// Package tuistyles holds the colors and styles shared by the TUI and its
// scenes and components, kept separate to avoid import cycles.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#04B575")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF5F87")
	ColorInfo      = lipgloss.Color("#5FAFFF")

	ColorBackground = lipgloss.Color("#1A1A1A")
	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#626262")
	ColorBorder     = lipgloss.Color("#383838")

	// one color per regime in charts
	ColorOldRegime = lipgloss.Color("#FFA657")
	ColorNewRegime = lipgloss.Color("#5FAFFF")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	FieldLabelStyle        = lipgloss.NewStyle().Foreground(ColorForeground).Width(24)
	FocusedFieldLabelStyle = FieldLabelStyle.Foreground(ColorPrimary).Bold(true)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorPrimary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
)

// MetricTrendStyle colors a change: green for savings, red for extra cost
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a rupee amount with Indian digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatRupees(amount)
}

// RegimeColor picks the chart color for a regime name
func RegimeColor(regime string) lipgloss.Color {
	if regime == "old" {
		return ColorOldRegime
	}
	return ColorNewRegime
}
