package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetSection80C replaces the 80C claim.
type SetSection80C struct {
	Amount decimal.Decimal
}

func (t *SetSection80C) Name() string { return "set_80c" }

func (t *SetSection80C) Description() string {
	return fmt.Sprintf("Claim %s under Section 80C", output.FormatRupees(t.Amount))
}

func (t *SetSection80C) Validate(base domain.TaxInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetSection80C) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Section80C = t.Amount
	return base, nil
}

// RaiseSection80C lifts the 80C claim to at least Limit; higher claims are kept.
type RaiseSection80C struct {
	Limit decimal.Decimal
}

func (t *RaiseSection80C) Name() string { return "raise_80c" }

func (t *RaiseSection80C) Description() string {
	return fmt.Sprintf("Raise Section 80C claims to %s", output.FormatRupees(t.Limit))
}

func (t *RaiseSection80C) Validate(base domain.TaxInput) error {
	if !t.Limit.IsPositive() {
		return NewTransformError(t.Name(), "validate", "limit must be positive", nil)
	}
	return nil
}

func (t *RaiseSection80C) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Section80C = decimal.Max(base.Section80C, t.Limit)
	return base, nil
}

// SetSection80D replaces the 80D claim.
type SetSection80D struct {
	Amount decimal.Decimal
}

func (t *SetSection80D) Name() string { return "set_80d" }

func (t *SetSection80D) Description() string {
	return fmt.Sprintf("Claim %s under Section 80D", output.FormatRupees(t.Amount))
}

func (t *SetSection80D) Validate(base domain.TaxInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetSection80D) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Section80D = t.Amount
	return base, nil
}

// AdjustIncome scales gross income by a percentage, e.g. 10 for a 10% raise.
// Basic salary scales with it so the HRA caps move in step.
type AdjustIncome struct {
	Percent decimal.Decimal
}

func (t *AdjustIncome) Name() string { return "adjust_income" }

func (t *AdjustIncome) Description() string {
	if t.Percent.IsNegative() {
		return fmt.Sprintf("Cut gross income by %s%%", t.Percent.Abs().String())
	}
	return fmt.Sprintf("Raise gross income by %s%%", t.Percent.String())
}

func (t *AdjustIncome) Validate(base domain.TaxInput) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("percent must be above -100, got %s", t.Percent.String()), nil)
	}
	return nil
}

func (t *AdjustIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(hundred))
	base.GrossIncome = base.GrossIncome.Mul(factor).Round(0)
	base.BasicSalary = base.BasicSalary.Mul(factor).Round(0)
	return base, nil
}

// SetRent replaces the annual rent paid.
type SetRent struct {
	Annual decimal.Decimal
}

func (t *SetRent) Name() string { return "set_rent" }

func (t *SetRent) Description() string {
	if t.Annual.IsZero() {
		return "Stop paying rent"
	}
	return fmt.Sprintf("Pay %s rent a year", output.FormatRupees(t.Annual))
}

func (t *SetRent) Validate(base domain.TaxInput) error {
	if t.Annual.IsNegative() {
		return NewTransformError(t.Name(), "validate", "rent cannot be negative", nil)
	}
	return nil
}

func (t *SetRent) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.RentPaid = t.Annual
	return base, nil
}

// AddOtherIncome adds to income from other sources.
type AddOtherIncome struct {
	Amount decimal.Decimal
}

func (t *AddOtherIncome) Name() string { return "add_other_income" }

func (t *AddOtherIncome) Description() string {
	return fmt.Sprintf("Add %s of other income", output.FormatRupees(t.Amount))
}

func (t *AddOtherIncome) Validate(base domain.TaxInput) error {
	if base.OtherIncome.Add(t.Amount).IsNegative() {
		return NewTransformError(t.Name(), "validate", "other income would become negative", nil)
	}
	return nil
}

func (t *AddOtherIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.OtherIncome = base.OtherIncome.Add(t.Amount)
	return base, nil
}

// SetAge changes the taxpayer's age, which selects the regime age band.
type SetAge struct {
	Age int
}

func (t *SetAge) Name() string { return "set_age" }

func (t *SetAge) Description() string {
	return fmt.Sprintf("Evaluate at age %d", t.Age)
}

func (t *SetAge) Validate(base domain.TaxInput) error {
	if t.Age < 0 || t.Age > 130 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("age %d out of range", t.Age), nil)
	}
	return nil
}

func (t *SetAge) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Age = t.Age
	return base, nil
}
