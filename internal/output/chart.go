package output

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// ChartPoint is one labelled value in a chart
type ChartPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// ChartData holds the series behind the comparison charts: income against
// each regime's tax, and each regime's split of income into tax and take-home
type ChartData struct {
	IncomeVsTax []ChartPoint `json:"incomeVsTax"`
	OldSplit    []ChartPoint `json:"oldSplit"`
	NewSplit    []ChartPoint `json:"newSplit"`
}

// BuildChartData derives chart series from a comparison
func BuildChartData(c *domain.RegimeComparison) ChartData {
	income := c.Input.TotalIncome()
	return ChartData{
		IncomeVsTax: []ChartPoint{
			{Label: "Income", Value: income},
			{Label: c.Old.Label, Value: c.Old.TaxPayable},
			{Label: c.New.Label, Value: c.New.TaxPayable},
		},
		OldSplit: split(income, c.Old.TaxPayable),
		NewSplit: split(income, c.New.TaxPayable),
	}
}

func split(income, tax decimal.Decimal) []ChartPoint {
	return []ChartPoint{
		{Label: "After tax", Value: domain.NonNegative(income.Sub(tax))},
		{Label: "Tax", Value: tax},
	}
}

// MaxValue returns the largest value in the series, or zero when empty
func MaxValue(points []ChartPoint) decimal.Decimal {
	largest := decimal.Zero
	for _, p := range points {
		if p.Value.GreaterThan(largest) {
			largest = p.Value
		}
	}
	return largest
}
