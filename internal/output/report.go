package output

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Distribution is each regime's share of the combined payable tax
type Distribution struct {
	OldPercent decimal.Decimal `json:"oldPercent"`
	NewPercent decimal.Decimal `json:"newPercent"`
	Total      decimal.Decimal `json:"total"`
}

// Report is the printable summary of a regime comparison
type Report struct {
	Title          string                   `json:"title"`
	ProfileName    string                   `json:"profileName,omitempty"`
	AssessmentYear string                   `json:"assessmentYear"`
	GeneratedAt    time.Time                `json:"generatedAt"`
	Comparison     *domain.RegimeComparison `json:"comparison"`
	Distribution   Distribution             `json:"distribution"`
	Recommendation string                   `json:"recommendation"`
	SavingsInWords string                   `json:"savingsInWords"`
	Chart          ChartData                `json:"chart"`
}

// NewReport builds a report for a comparison
func NewReport(profileName string, comparison *domain.RegimeComparison) *Report {
	return &Report{
		Title:          "Tax Comparison Report",
		ProfileName:    profileName,
		AssessmentYear: comparison.New.AssessmentYear,
		GeneratedAt:    time.Now(),
		Comparison:     comparison,
		Distribution:   NewDistribution(comparison.Old.TaxPayable, comparison.New.TaxPayable),
		Recommendation: Recommendation(comparison),
		SavingsInWords: AmountInWords(comparison.Savings),
		Chart:          BuildChartData(comparison),
	}
}

// NewDistribution splits the combined tax into percentage shares. Both
// shares are zero when neither regime has any tax.
func NewDistribution(oldTax, newTax decimal.Decimal) Distribution {
	total := oldTax.Add(newTax)
	d := Distribution{OldPercent: decimal.Zero, NewPercent: decimal.Zero, Total: total}
	if total.IsPositive() {
		d.OldPercent = oldTax.Div(total).Mul(hundred)
		d.NewPercent = newTax.Div(total).Mul(hundred)
	}
	return d
}

// Recommendation phrases the comparison outcome for a reader
func Recommendation(c *domain.RegimeComparison) string {
	switch c.Cheaper {
	case domain.CheaperOld:
		return fmt.Sprintf("%s saves %s", c.Old.Label, FormatRupees(c.Savings))
	case domain.CheaperNew:
		return fmt.Sprintf("%s saves %s", c.New.Label, FormatRupees(c.Savings))
	}
	return "Both regimes cost the same"
}

// OtherExemptions is everything deducted beyond the HRA exemption
func OtherExemptions(r domain.TaxResult) decimal.Decimal {
	return r.TotalDeductions.Sub(r.HRAExemption)
}
