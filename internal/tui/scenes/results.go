package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/rgehrsitz/taxregime/internal/tui/components"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
)

// ResultsModel shows one comparison: payable per regime, the breakdown
// behind it and charts
type ResultsModel struct {
	report *output.Report
	width  int
	height int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetComparison replaces the displayed comparison
func (m *ResultsModel) SetComparison(c *domain.RegimeComparison) {
	if c == nil {
		m.report = nil
		return
	}
	m.report = output.NewReport("", c)
}

// Report returns the report behind the view, or nil
func (m *ResultsModel) Report() *output.Report {
	return m.report
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; the results scene is read-only
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render(
			"No results yet.\n\n" + tuistyles.SubtitleStyle.Render("Fill in the form and press enter to compare the regimes."))
	}
	c := m.report.Comparison

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderCards(c),
		m.renderRecommendation(c),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, renderBreakdown(c), "   ", m.renderCharts()),
	)
}

func (m *ResultsModel) renderCards(c *domain.RegimeComparison) string {
	oldCard := components.NewMetricCard(c.Old.Label, tuistyles.FormatCurrency(c.Old.TaxPayable)).
		WithDescription(fmt.Sprintf("Taxable %s", tuistyles.FormatCurrency(c.Old.TaxableIncome))).
		WithHighlight(c.Cheaper == domain.CheaperOld).
		WithWidth(26)
	newCard := components.NewMetricCard(c.New.Label, tuistyles.FormatCurrency(c.New.TaxPayable)).
		WithDescription(fmt.Sprintf("Taxable %s", tuistyles.FormatCurrency(c.New.TaxableIncome))).
		WithHighlight(c.Cheaper == domain.CheaperNew).
		WithWidth(26)
	savings := components.NewMetricCard("Savings", tuistyles.FormatCurrency(c.Savings)).
		WithDescription("by choosing " + cheaperLabel(c)).
		WithWidth(26)
	return components.MetricGrid([]*components.MetricCard{oldCard, newCard, savings}, 3)
}

func (m *ResultsModel) renderRecommendation(c *domain.RegimeComparison) string {
	line := tuistyles.TableHighlightStyle.Render("➜ " + m.report.Recommendation)
	if c.Cheaper != domain.CheaperEqual {
		line += "\n  " + tuistyles.SubtitleStyle.Render(m.report.SavingsInWords)
	}
	return line
}

func (m *ResultsModel) renderCharts() string {
	chart := m.report.Chart
	c := m.report.Comparison
	split := tuistyles.ColorSuccess

	incomeVsTax := components.FromPoints("Income vs tax", chart.IncomeVsTax,
		tuistyles.ColorMuted, tuistyles.ColorOldRegime, tuistyles.ColorNewRegime).WithWidth(30)
	oldSplit := components.FromPoints(c.Old.Label+" split", chart.OldSplit, split, tuistyles.ColorOldRegime).WithWidth(30)
	newSplit := components.FromPoints(c.New.Label+" split", chart.NewSplit, split, tuistyles.ColorNewRegime).WithWidth(30)

	d := m.report.Distribution
	shares := tuistyles.TableHeaderStyle.Render("Share of combined tax") + "\n" +
		components.NewShareBar(c.Old.Label, d.OldPercent).WithColor(tuistyles.ColorOldRegime).Render() + "\n" +
		components.NewShareBar(c.New.Label, d.NewPercent).WithColor(tuistyles.ColorNewRegime).Render() + "\n"

	return lipgloss.JoinVertical(lipgloss.Left,
		incomeVsTax.Render(), oldSplit.Render(), newSplit.Render(), shares)
}

func renderBreakdown(c *domain.RegimeComparison) string {
	rows := []struct {
		label    string
		old, new string
	}{
		{"Gross total", tuistyles.FormatCurrency(c.Old.GrossTotal), tuistyles.FormatCurrency(c.New.GrossTotal)},
		{"HRA exemption", tuistyles.FormatCurrency(c.Old.HRAExemption), tuistyles.FormatCurrency(c.New.HRAExemption)},
		{"Other exemptions", tuistyles.FormatCurrency(output.OtherExemptions(c.Old)), tuistyles.FormatCurrency(output.OtherExemptions(c.New))},
		{"Total deductions", tuistyles.FormatCurrency(c.Old.TotalDeductions), tuistyles.FormatCurrency(c.New.TotalDeductions)},
		{"Taxable income", tuistyles.FormatCurrency(c.Old.TaxableIncome), tuistyles.FormatCurrency(c.New.TaxableIncome)},
		{"Tax before rebate", tuistyles.FormatCurrency(c.Old.TaxBeforeRebate), tuistyles.FormatCurrency(c.New.TaxBeforeRebate)},
		{"87A rebate", yesNo(c.Old.RebateApplied), yesNo(c.New.RebateApplied)},
		{"Tax payable", tuistyles.FormatCurrency(c.Old.TaxPayable), tuistyles.FormatCurrency(c.New.TaxPayable)},
	}

	label := lipgloss.NewStyle().Width(18)
	cell := lipgloss.NewStyle().Width(13).Align(lipgloss.Right)

	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(
		label.Render("") + cell.Render(c.Old.Label) + cell.Render(c.New.Label)))
	sb.WriteString("\n")
	for i, r := range rows {
		style := tuistyles.TableCellStyle
		if i == len(rows)-1 {
			style = tuistyles.TableHighlightStyle
		}
		sb.WriteString(style.Render(label.Render(r.label) + cell.Render(r.old) + cell.Render(r.new)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func cheaperLabel(c *domain.RegimeComparison) string {
	switch c.Cheaper {
	case domain.CheaperOld:
		return c.Old.Label
	case domain.CheaperNew:
		return c.New.Label
	}
	return "either regime"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
