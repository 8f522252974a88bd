package domain

import "github.com/shopspring/decimal"

// TaxResult is the outcome of running one TaxInput through one regime
type TaxResult struct {
	Regime          RegimeName      `json:"regime"`
	Label           string          `json:"label"`
	AssessmentYear  string          `json:"assessmentYear"`
	GrossTotal      decimal.Decimal `json:"grossTotal"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	HRAExemption    decimal.Decimal `json:"hraExemption"`
	TaxableIncome   decimal.Decimal `json:"taxableIncome"`
	TaxBeforeRebate decimal.Decimal `json:"taxBeforeRebate"`
	RebateApplied   bool            `json:"rebateApplied"`
	// TaxPayable is rounded to the nearest whole rupee
	TaxPayable    decimal.Decimal `json:"taxPayable"`
	SlabBreakdown []SlabTax       `json:"slabBreakdown,omitempty"`
}

// EffectiveRate is payable tax as a share of gross total income
func (r TaxResult) EffectiveRate() decimal.Decimal {
	if !r.GrossTotal.IsPositive() {
		return decimal.Zero
	}
	return r.TaxPayable.Div(r.GrossTotal)
}

// Cheaper names the regime with the lower payable tax
type Cheaper string

const (
	CheaperOld   Cheaper = "old"
	CheaperNew   Cheaper = "new"
	CheaperEqual Cheaper = "equal"
)

// RegimeComparison holds both regime results for the same input
type RegimeComparison struct {
	Input   TaxInput        `json:"input"`
	Old     TaxResult       `json:"old"`
	New     TaxResult       `json:"new"`
	Cheaper Cheaper         `json:"cheaper"`
	Savings decimal.Decimal `json:"savings"`
}

// Recommended returns the result of the cheaper regime, or New when equal
func (c RegimeComparison) Recommended() TaxResult {
	if c.Cheaper == CheaperOld {
		return c.Old
	}
	return c.New
}
