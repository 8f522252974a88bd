package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxInput holds the raw figures for one taxpayer and one year.
// All amounts are annual rupee values.
type TaxInput struct {
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	OtherIncome decimal.Decimal `yaml:"other_income" json:"otherIncome"`
	Section80C  decimal.Decimal `yaml:"section_80c" json:"section80C"`
	Section80D  decimal.Decimal `yaml:"section_80d" json:"section80D"`
	HRAReceived decimal.Decimal `yaml:"hra_received" json:"hraReceived"`
	RentPaid    decimal.Decimal `yaml:"rent_paid" json:"rentPaid"`
	BasicSalary decimal.Decimal `yaml:"basic_salary" json:"basicSalary"`
	Age         int             `yaml:"age" json:"age"`
}

// Normalize clamps negative amounts and age to zero. The engine is a
// best-effort estimator, so bad inputs degrade to 0 instead of failing.
func (in TaxInput) Normalize() TaxInput {
	return TaxInput{
		GrossIncome: NonNegative(in.GrossIncome),
		OtherIncome: NonNegative(in.OtherIncome),
		Section80C:  NonNegative(in.Section80C),
		Section80D:  NonNegative(in.Section80D),
		HRAReceived: NonNegative(in.HRAReceived),
		RentPaid:    NonNegative(in.RentPaid),
		BasicSalary: NonNegative(in.BasicSalary),
		Age:         max(in.Age, 0),
	}
}

// TotalIncome is gross plus other income
func (in TaxInput) TotalIncome() decimal.Decimal {
	return in.GrossIncome.Add(in.OtherIncome)
}

// NonNegative clamps d to zero from below
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseAmount converts user-entered text into an amount. Empty, malformed
// or negative input yields zero. Thousands separators, spaces and a leading
// rupee sign are tolerated.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.TrimPrefix(cleaned, "Rs.")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// ParseAge converts user-entered text into an age, defaulting to 0
func ParseAge(s string) int {
	d := ParseAmount(s)
	return int(d.IntPart())
}

// Profile is a named TaxInput, as stored in profile files
type Profile struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Input       TaxInput `yaml:"input" json:"input"`
}

// ProfileFile is the on-disk layout of a set of taxpayer profiles
type ProfileFile struct {
	AssessmentYear string            `yaml:"assessment_year,omitempty" json:"assessmentYear,omitempty"`
	Options        EvaluationOptions `yaml:"options,omitempty" json:"options,omitempty"`
	Profiles       []Profile         `yaml:"profiles" json:"profiles"`
}
