package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs tax inputs through regime configurations. It holds
// no per-call state and is safe for concurrent use once the logger is set.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log every intermediate figure at Debug level
}

// NewCalculationEngine creates a new calculation engine with a no-op logger
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger attaches a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Log returns the attached logger, never nil
func (ce *CalculationEngine) Log() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Calculate runs the full pipeline for one regime: deductions, taxable
// income, slab tax on the age-adjusted table, rebate, then rounding to the
// nearest rupee. Intermediate figures are kept exact.
func (ce *CalculationEngine) Calculate(input domain.TaxInput, regime domain.RegimeConfig) (*domain.TaxResult, error) {
	input = input.Normalize()

	adjusted, err := regime.ForAge(input.Age)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", regime.DisplayName(), err)
	}

	deductions := AggregateDeductions(input, adjusted)
	taxable := TaxableIncome(input, deductions)

	breakdown, err := ComputeSlabBreakdown(taxable, adjusted.Slabs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s slab tax: %w", regime.DisplayName(), err)
	}
	beforeRebate := decimal.Zero
	for _, part := range breakdown {
		beforeRebate = beforeRebate.Add(part.Tax)
	}

	afterRebate := ApplyRebate(beforeRebate, taxable, adjusted)
	result := &domain.TaxResult{
		Regime:          adjusted.Name,
		Label:           adjusted.DisplayName(),
		AssessmentYear:  adjusted.AssessmentYear,
		GrossTotal:      input.TotalIncome(),
		TotalDeductions: deductions.Total,
		HRAExemption:    deductions.HRAExemption,
		TaxableIncome:   taxable,
		TaxBeforeRebate: beforeRebate,
		RebateApplied:   RebateApplies(taxable, adjusted) && beforeRebate.IsPositive(),
		TaxPayable:      afterRebate.Round(0),
		SlabBreakdown:   breakdown,
	}

	if ce.Debug {
		ce.Log().Debugf("%s regime: gross=%s deductions=%s (std=%s 80C=%s 80D=%s hra=%s) taxable=%s",
			result.Label, result.GrossTotal.String(), deductions.Total.String(),
			deductions.StandardDeduction.String(), deductions.Section80C.String(),
			deductions.Section80D.String(), deductions.HRAExemption.String(), taxable.String())
		ce.Log().Debugf("%s regime: slab tax=%s rebate=%t payable=%s",
			result.Label, beforeRebate.String(), result.RebateApplied, result.TaxPayable.String())
	}
	return result, nil
}

// CompareRegimes evaluates the same input under both regimes independently
// and reports which one yields the lower rounded tax
func (ce *CalculationEngine) CompareRegimes(input domain.TaxInput, oldRegime, newRegime domain.RegimeConfig) (*domain.RegimeComparison, error) {
	oldResult, err := ce.Calculate(input, oldRegime)
	if err != nil {
		return nil, err
	}
	newResult, err := ce.Calculate(input, newRegime)
	if err != nil {
		return nil, err
	}

	comparison := &domain.RegimeComparison{
		Input:   input.Normalize(),
		Old:     *oldResult,
		New:     *newResult,
		Cheaper: CheaperOf(oldResult.TaxPayable, newResult.TaxPayable),
		Savings: oldResult.TaxPayable.Sub(newResult.TaxPayable).Abs(),
	}
	ce.Log().Infof("regime comparison: old=%s new=%s cheaper=%s savings=%s",
		oldResult.TaxPayable.String(), newResult.TaxPayable.String(), comparison.Cheaper, comparison.Savings.String())
	return comparison, nil
}

// CompareYear looks up both regimes for a year, applies the evaluation
// options and compares them
func (ce *CalculationEngine) CompareYear(input domain.TaxInput, regimes domain.YearRegimes, opts domain.EvaluationOptions) (*domain.RegimeComparison, error) {
	return ce.CompareRegimes(input, regimes.Old.WithOptions(opts), regimes.New.WithOptions(opts))
}

// CheaperOf classifies two payable amounts. Equal only on exact equality.
func CheaperOf(oldPayable, newPayable decimal.Decimal) domain.Cheaper {
	switch oldPayable.Cmp(newPayable) {
	case -1:
		return domain.CheaperOld
	case 1:
		return domain.CheaperNew
	}
	return domain.CheaperEqual
}

// CompareRegimes is a convenience wrapper around a default engine
func CompareRegimes(input domain.TaxInput, oldRegime, newRegime domain.RegimeConfig) (*domain.RegimeComparison, error) {
	return NewCalculationEngine().CompareRegimes(input, oldRegime, newRegime)
}
