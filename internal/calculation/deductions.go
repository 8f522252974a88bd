package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionSummary itemises the deductions a regime allows for an input
type DeductionSummary struct {
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	Section80C        decimal.Decimal `json:"section80C"`
	Section80D        decimal.Decimal `json:"section80D"`
	HRAExemption      decimal.Decimal `json:"hraExemption"`
	Total             decimal.Decimal `json:"total"`
}

// AggregateDeductions totals the deductions permitted by the regime.
// Regimes with itemized deductions add 80C, 80D and the HRA exemption to the
// standard deduction; the others allow the standard deduction alone and
// report a zero HRA exemption. 80C and 80D are taken as entered.
func AggregateDeductions(input domain.TaxInput, regime domain.RegimeConfig) DeductionSummary {
	input = input.Normalize()

	summary := DeductionSummary{
		StandardDeduction: domain.NonNegative(regime.StandardDeduction),
		Section80C:        decimal.Zero,
		Section80D:        decimal.Zero,
		HRAExemption:      decimal.Zero,
	}
	if regime.AllowsItemizedDeductions {
		summary.Section80C = input.Section80C
		summary.Section80D = input.Section80D
		summary.HRAExemption = ComputeHRAExemption(input.HRAReceived, input.RentPaid, input.BasicSalary)
	}
	summary.Total = summary.StandardDeduction.
		Add(summary.Section80C).
		Add(summary.Section80D).
		Add(summary.HRAExemption)
	return summary
}

// TaxableIncome subtracts the deduction total from gross plus other income,
// never going below zero
func TaxableIncome(input domain.TaxInput, deductions DeductionSummary) decimal.Decimal {
	return domain.NonNegative(input.Normalize().TotalIncome().Sub(deductions.Total))
}
