package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one profile's regime comparison with display metrics
type ComparisonResult struct {
	ProfileName string                   `json:"profileName"`
	Description string                   `json:"description,omitempty"`
	Comparison  *domain.RegimeComparison `json:"comparison"`

	// Key Metrics
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	OldTax        decimal.Decimal `json:"oldTax"`
	NewTax        decimal.Decimal `json:"newTax"`
	Cheaper       domain.Cheaper  `json:"cheaper"`
	Savings       decimal.Decimal `json:"savings"`
	BestTax       decimal.Decimal `json:"bestTax"`       // payable under the recommended regime
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // BestTax over total income, percent

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	CheaperChanged  bool            `json:"cheaperChanged"`
}

// ComparisonSet represents a base profile and its alternatives
type ComparisonSet struct {
	BaseProfileName    string             `json:"baseProfileName"`
	AssessmentYear     string             `json:"assessmentYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilesPath       string             `json:"profilesPath,omitempty"`
}

// MetricsCalculator extracts key metrics from regime comparisons
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one profile
func (mc *MetricsCalculator) CalculateMetrics(name string, comparison *domain.RegimeComparison) ComparisonResult {
	best := comparison.Recommended()
	result := ComparisonResult{
		ProfileName:   name,
		Comparison:    comparison,
		TotalIncome:   comparison.Input.TotalIncome(),
		OldTax:        comparison.Old.TaxPayable,
		NewTax:        comparison.New.TaxPayable,
		Cheaper:       comparison.Cheaper,
		Savings:       comparison.Savings,
		BestTax:       best.TaxPayable,
		EffectiveRate: best.EffectiveRate().Mul(decimal.NewFromInt(100)),
	}
	return result
}

// CalculateComparison computes deltas between a profile and the base
func (mc *MetricsCalculator) CalculateComparison(profile, base ComparisonResult) ComparisonResult {
	profile.TaxDiffFromBase = profile.BestTax.Sub(base.BestTax)

	if !base.BestTax.IsZero() {
		profile.TaxPctFromBase = profile.TaxDiffFromBase.
			Div(base.BestTax).
			Mul(decimal.NewFromInt(100))
	}

	profile.CheaperChanged = profile.Cheaper != base.Cheaper
	return profile
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	base := compSet.BaseResult
	if base == nil {
		return recommendations
	}

	recommendations = append(recommendations,
		fmt.Sprintf("%s: %s", base.ProfileName, output.Recommendation(base.Comparison)))

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find lowest tax burden
	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestTax.LessThan(lowestTax.BestTax) {
			lowestTax = alt
		}
	}

	if lowestTax != base {
		taxSavings := base.BestTax.Sub(lowestTax.BestTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ProfileName+" pays "+output.FormatRupees(taxSavings)+
				" less than "+base.ProfileName)
	}

	// Alternatives that change which regime wins
	for _, alt := range compSet.AlternativeResults {
		if alt.CheaperChanged && alt.Cheaper != domain.CheaperEqual {
			recommendations = append(recommendations,
				fmt.Sprintf("Regime Switch: under %s the %s becomes cheaper, by %s",
					alt.ProfileName, alt.Comparison.Recommended().Label, output.FormatRupees(alt.Savings)))
		}
	}

	return recommendations
}
