package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

// newRegime2024 is the FY2024-25 New regime table
func newRegime2024() domain.RegimeConfig {
	return domain.RegimeConfig{
		Name:           domain.RegimeNew,
		Label:          "New Regime",
		AssessmentYear: "2024-25",
		Slabs: domain.SlabTable{
			domain.NewSlab(300000, 0),
			domain.NewSlab(600000, 0.05),
			domain.NewSlab(900000, 0.10),
			domain.NewSlab(1200000, 0.15),
			domain.NewSlab(1500000, 0.20),
			domain.NewTopSlab(0.30),
		},
		StandardDeduction:        dec(75000),
		AllowsItemizedDeductions: false,
		RebateEnabled:            true,
		RebateThreshold:          dec(700000),
		AgeBands: []domain.AgeBand{
			{MinAge: 60, FirstSlabUpperBound: dec(350000)},
		},
	}
}

// oldRegime2024 is the FY2024-25 Old regime table
func oldRegime2024() domain.RegimeConfig {
	return domain.RegimeConfig{
		Name:           domain.RegimeOld,
		Label:          "Old Regime",
		AssessmentYear: "2024-25",
		Slabs: domain.SlabTable{
			domain.NewSlab(250000, 0),
			domain.NewSlab(500000, 0.05),
			domain.NewSlab(1000000, 0.20),
			domain.NewTopSlab(0.30),
		},
		StandardDeduction:        dec(50000),
		AllowsItemizedDeductions: true,
		RebateEnabled:            true,
		RebateThreshold:          dec(500000),
		AgeBands: []domain.AgeBand{
			{MinAge: 60, FirstSlabUpperBound: dec(300000)},
			{MinAge: 80, FirstSlabUpperBound: dec(500000)},
		},
	}
}

func regimes2024() domain.YearRegimes {
	return domain.YearRegimes{Old: oldRegime2024(), New: newRegime2024()}
}

// scenarioBInput carries 80C and HRA figures on a 1000000 income
func scenarioBInput() domain.TaxInput {
	return domain.TaxInput{
		GrossIncome: dec(1000000),
		Section80C:  dec(100000),
		HRAReceived: dec(60000),
		RentPaid:    dec(120000),
		BasicSalary: dec(400000),
		Age:         35,
	}
}

// recordingLogger captures formatted messages for assertions
type recordingLogger struct {
	debug []string
	info  []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debug = append(l.debug, format)
}
func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.info = append(l.info, format)
}
func (l *recordingLogger) Warnf(string, ...interface{})  {}
func (l *recordingLogger) Errorf(string, ...interface{}) {}
