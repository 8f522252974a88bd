package calculation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &recordingLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculate_ScenarioA_NewRegime(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Calculate(domain.TaxInput{GrossIncome: dec(850000)}, newRegime2024())
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeNew, result.Regime)
	assertDecimal(t, "75000", result.TotalDeductions)
	assertDecimal(t, "0", result.HRAExemption)
	assertDecimal(t, "775000", result.TaxableIncome)
	assertDecimal(t, "32500", result.TaxBeforeRebate)
	assert.False(t, result.RebateApplied)
	assertDecimal(t, "32500", result.TaxPayable)
}

func TestCalculate_ScenarioB_OldRegime(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Calculate(scenarioBInput(), oldRegime2024())
	require.NoError(t, err)

	assertDecimal(t, "60000", result.HRAExemption)
	assertDecimal(t, "210000", result.TotalDeductions)
	assertDecimal(t, "790000", result.TaxableIncome)
	assertDecimal(t, "70500", result.TaxPayable)
	assert.Len(t, result.SlabBreakdown, 3)
}

func TestCalculate_RebateCliff(t *testing.T) {
	engine := NewCalculationEngine()
	regime := newRegime2024()
	regime.StandardDeduction = dec(0)

	atThreshold, err := engine.Calculate(domain.TaxInput{GrossIncome: dec(700000)}, regime)
	require.NoError(t, err)
	assertDecimal(t, "0", atThreshold.TaxPayable)
	assertDecimal(t, "25000", atThreshold.TaxBeforeRebate)
	assert.True(t, atThreshold.RebateApplied)

	overThreshold, err := engine.Calculate(domain.TaxInput{GrossIncome: dec(700001)}, regime)
	require.NoError(t, err)
	assertDecimal(t, "25000.1", overThreshold.TaxBeforeRebate)
	assertDecimal(t, "25000", overThreshold.TaxPayable)
	assert.False(t, overThreshold.RebateApplied)
}

func TestCalculate_RebateNotReportedWhenNoTax(t *testing.T) {
	result, err := NewCalculationEngine().Calculate(domain.TaxInput{GrossIncome: dec(200000)}, newRegime2024())
	require.NoError(t, err)

	assertDecimal(t, "0", result.TaxPayable)
	assert.False(t, result.RebateApplied)
}

func TestCalculate_SeniorBandRaisesExemption(t *testing.T) {
	engine := NewCalculationEngine()
	regime := newRegime2024()
	regime.RebateEnabled = false
	regime.StandardDeduction = dec(0)

	young, err := engine.Calculate(domain.TaxInput{GrossIncome: dec(500000), Age: 45}, regime)
	require.NoError(t, err)
	senior, err := engine.Calculate(domain.TaxInput{GrossIncome: dec(500000), Age: 60}, regime)
	require.NoError(t, err)

	assertDecimal(t, "10000", young.TaxPayable)
	assertDecimal(t, "7500", senior.TaxPayable)

	// the source config is untouched
	assertDecimal(t, "300000", *regime.Slabs[0].UpperBound)
}

func TestCalculate_DefaultAgeBands(t *testing.T) {
	set, err := config.NewInputParser().LoadDefaultRegimes()
	require.NoError(t, err)
	regimes, err := set.Lookup("2024-25")
	require.NoError(t, err)

	tests := []struct {
		age     int
		oldTax  string
		newTax  string
		cheaper domain.Cheaper
	}{
		{59, "102500", "48750", domain.CheaperNew},
		{60, "100000", "46250", domain.CheaperNew},
		{80, "90000", "46250", domain.CheaperNew},
		{92, "90000", "46250", domain.CheaperNew},
	}
	engine := NewCalculationEngine()
	for _, tt := range tests {
		t.Run(fmt.Sprintf("age %d", tt.age), func(t *testing.T) {
			comparison, err := engine.CompareYear(domain.TaxInput{GrossIncome: dec(1000000), Age: tt.age}, regimes, domain.EvaluationOptions{})
			require.NoError(t, err)
			assertDecimal(t, tt.oldTax, comparison.Old.TaxPayable)
			assertDecimal(t, tt.newTax, comparison.New.TaxPayable)
			assert.Equal(t, tt.cheaper, comparison.Cheaper)
		})
	}
}

func TestCalculate_NegativeInputsClamp(t *testing.T) {
	input := domain.TaxInput{GrossIncome: dec(-100000), OtherIncome: dec(-1), Age: -4}

	result, err := NewCalculationEngine().Calculate(input, oldRegime2024())
	require.NoError(t, err)
	assertDecimal(t, "0", result.TaxableIncome)
	assertDecimal(t, "0", result.TaxPayable)
}

func TestCalculate_MalformedConfig(t *testing.T) {
	regime := newRegime2024()
	regime.Slabs[2] = domain.NewSlab(500000, 0.10)

	_, err := NewCalculationEngine().Calculate(domain.TaxInput{GrossIncome: dec(850000)}, regime)
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "new", cfgErr.Regime)
	assert.Equal(t, "slabs[2].upper_bound", cfgErr.Field)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to prepare New Regime: "), err.Error())
}

func TestCalculate_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	_, err := engine.Calculate(scenarioBInput(), oldRegime2024())
	require.NoError(t, err)
	assert.Empty(t, logger.debug)

	engine.Debug = true
	_, err = engine.Calculate(scenarioBInput(), oldRegime2024())
	require.NoError(t, err)
	assert.Len(t, logger.debug, 2)
}

func TestCompareRegimes(t *testing.T) {
	input := scenarioBInput()
	input.GrossIncome = dec(850000)

	comparison, err := CompareRegimes(input, oldRegime2024(), newRegime2024())
	require.NoError(t, err)

	assertDecimal(t, "640000", comparison.Old.TaxableIncome)
	assertDecimal(t, "40500", comparison.Old.TaxPayable)
	assertDecimal(t, "775000", comparison.New.TaxableIncome)
	assertDecimal(t, "32500", comparison.New.TaxPayable)
	assert.Equal(t, domain.CheaperNew, comparison.Cheaper)
	assertDecimal(t, "8000", comparison.Savings)
	assert.Equal(t, domain.CheaperNew, domain.Cheaper(comparison.Recommended().Regime))
}

func TestCompareRegimes_OldCheaper(t *testing.T) {
	input := scenarioBInput()
	input.Section80C = dec(300000)

	comparison, err := CompareRegimes(input, oldRegime2024(), newRegime2024())
	require.NoError(t, err)

	// 1000000 - (50000+300000+60000) = 590000 -> 12500 + 18000
	assertDecimal(t, "30500", comparison.Old.TaxPayable)
	assertDecimal(t, "48750", comparison.New.TaxPayable)
	assert.Equal(t, domain.CheaperOld, comparison.Cheaper)
	assertDecimal(t, "18250", comparison.Savings)
}

func TestCompareRegimes_OldRebateZone(t *testing.T) {
	input := scenarioBInput()
	input.GrossIncome = dec(850000)
	input.Section80C = dec(300000)

	comparison, err := CompareRegimes(input, oldRegime2024(), newRegime2024())
	require.NoError(t, err)

	// taxable 440000 sits under the Old regime rebate threshold
	assertDecimal(t, "9500", comparison.Old.TaxBeforeRebate)
	assert.True(t, comparison.Old.RebateApplied)
	assertDecimal(t, "0", comparison.Old.TaxPayable)
	assert.Equal(t, domain.CheaperOld, comparison.Cheaper)
	assertDecimal(t, "32500", comparison.Savings)
}

func TestCompareRegimes_Equal(t *testing.T) {
	comparison, err := CompareRegimes(domain.TaxInput{GrossIncome: dec(300000)}, oldRegime2024(), newRegime2024())
	require.NoError(t, err)

	assertDecimal(t, "0", comparison.Old.TaxPayable)
	assertDecimal(t, "0", comparison.New.TaxPayable)
	assert.Equal(t, domain.CheaperEqual, comparison.Cheaper)
	assertDecimal(t, "0", comparison.Savings)
}

func TestCompareRegimes_PropagatesConfigError(t *testing.T) {
	broken := oldRegime2024()
	broken.Slabs = nil

	_, err := CompareRegimes(scenarioBInput(), broken, newRegime2024())
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCheaperOf(t *testing.T) {
	assert.Equal(t, domain.CheaperOld, CheaperOf(dec(1), dec(2)))
	assert.Equal(t, domain.CheaperNew, CheaperOf(dec(2), dec(1)))
	assert.Equal(t, domain.CheaperEqual, CheaperOf(dec(2), dec(2)))
}

func TestCompareYear_AppliesOptions(t *testing.T) {
	engine := NewCalculationEngine()
	input := domain.TaxInput{GrossIncome: dec(700000)}

	plain, err := engine.CompareYear(input, regimes2024(), domain.EvaluationOptions{})
	require.NoError(t, err)
	assertDecimal(t, "0", plain.New.TaxPayable)

	noRebate, err := engine.CompareYear(input, regimes2024(), domain.EvaluationOptions{DisableRebate: true})
	require.NoError(t, err)
	// 700000 - 75000 = 625000 -> 15000 + 2500
	assertDecimal(t, "17500", noRebate.New.TaxPayable)

	noStd, err := engine.CompareYear(input, regimes2024(), domain.EvaluationOptions{DisableStandardDeduction: true, DisableRebate: true})
	require.NoError(t, err)
	assertDecimal(t, "700000", noStd.New.TaxableIncome)
	assertDecimal(t, "25000", noStd.New.TaxPayable)
}

func TestCalculate_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	input := scenarioBInput()

	first, err := engine.CompareRegimes(input, oldRegime2024(), newRegime2024())
	require.NoError(t, err)
	second, err := engine.CompareRegimes(input, oldRegime2024(), newRegime2024())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	engine := NewCalculationEngine()
	regime := oldRegime2024()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := engine.Calculate(scenarioBInput(), regime)
			if err == nil {
				results[i] = r.TaxPayable.String()
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "70500", r)
	}
}
