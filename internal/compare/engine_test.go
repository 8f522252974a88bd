package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func regimes2024(t *testing.T) domain.YearRegimes {
	t.Helper()
	set, err := config.NewInputParser().LoadDefaultRegimes()
	require.NoError(t, err)
	regimes, err := set.Lookup("2024-25")
	require.NoError(t, err)
	return regimes
}

func testProfiles() *domain.ProfileFile {
	salaried := domain.TaxInput{
		GrossIncome: dec(850000),
		Section80C:  dec(100000),
		HRAReceived: dec(60000),
		RentPaid:    dec(120000),
		BasicSalary: dec(400000),
		Age:         35,
	}
	investor := salaried
	investor.Section80C = dec(300000)

	return &domain.ProfileFile{
		Profiles: []domain.Profile{
			{Name: "salaried", Description: "Renting, modest 80C", Input: salaried},
			{Name: "investor", Description: "Heavy 80C", Input: investor},
		},
	}
}

func TestCompare_TemplatesAndProfiles(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), testProfiles(), regimes2024(t), CompareOptions{
		BaseProfileName:     "salaried",
		Templates:           []string{"max_80c"},
		AlternativeProfiles: []string{"investor"},
	})
	require.NoError(t, err)

	assert.Equal(t, "salaried", compSet.BaseProfileName)
	assert.Equal(t, "2024-25", compSet.AssessmentYear)

	base := compSet.BaseResult
	require.NotNil(t, base)
	assert.Equal(t, "Renting, modest 80C", base.Description)
	assert.True(t, dec(40500).Equal(base.OldTax))
	assert.True(t, dec(32500).Equal(base.NewTax))
	assert.Equal(t, domain.CheaperNew, base.Cheaper)
	assert.True(t, dec(32500).Equal(base.BestTax))

	require.Len(t, compSet.AlternativeResults, 2)

	maxed := compSet.AlternativeResults[0]
	assert.Equal(t, "salaried_max_80c", maxed.ProfileName)
	assert.True(t, dec(150000).Equal(maxed.Comparison.Input.Section80C))
	assert.True(t, dec(30500).Equal(maxed.OldTax))
	assert.Equal(t, domain.CheaperOld, maxed.Cheaper)
	assert.True(t, dec(-2000).Equal(maxed.TaxDiffFromBase))
	assert.True(t, maxed.CheaperChanged)

	investor := compSet.AlternativeResults[1]
	assert.Equal(t, "investor", investor.ProfileName)
	// the Old regime rebate wipes out the investor's tax
	assert.True(t, investor.BestTax.IsZero())
	assert.True(t, dec(-32500).Equal(investor.TaxDiffFromBase))
	assert.Equal(t, "-100.0", investor.TaxPctFromBase.StringFixed(1))

	assert.Equal(t, []string{
		"salaried: New Regime saves ₹8,000",
		"Lowest Tax: investor pays ₹32,500 less than salaried",
		"Regime Switch: under salaried_max_80c the Old Regime becomes cheaper, by ₹2,000",
		"Regime Switch: under investor the Old Regime becomes cheaper, by ₹32,500",
	}, compSet.Recommendations)
}

func TestCompare_DefaultsToAllProfiles(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), testProfiles(), regimes2024(t), CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, "salaried", compSet.BaseProfileName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "investor", compSet.AlternativeResults[0].ProfileName)
}

func TestCompare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()
	regimes := regimes2024(t)

	_, err := engine.Compare(ctx, &domain.ProfileFile{}, regimes, CompareOptions{})
	assert.ErrorContains(t, err, "no profiles")

	_, err = engine.Compare(ctx, testProfiles(), regimes, CompareOptions{BaseProfileName: "nobody"})
	assert.ErrorContains(t, err, "profile nobody not found")

	_, err = engine.Compare(ctx, testProfiles(), regimes, CompareOptions{Templates: []string{"lottery"}})
	assert.ErrorContains(t, err, "template lottery not found")

	broken := regimes
	broken.New.Slabs = domain.SlabTable{}
	_, err = engine.Compare(ctx, testProfiles(), broken, CompareOptions{})
	assert.ErrorContains(t, err, "failed to calculate base profile")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, testProfiles(), regimes, CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{BestTax: dec(40000), Cheaper: domain.CheaperNew}
	alt := ComparisonResult{BestTax: dec(30000), Cheaper: domain.CheaperNew}

	got := mc.CalculateComparison(alt, base)
	assert.True(t, dec(-10000).Equal(got.TaxDiffFromBase))
	assert.Equal(t, "-25.0", got.TaxPctFromBase.StringFixed(1))
	assert.False(t, got.CheaperChanged)

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{Cheaper: domain.CheaperEqual})
	assert.True(t, zeroBase.TaxPctFromBase.IsZero())
	assert.True(t, zeroBase.CheaperChanged)
}

func TestGenerateRecommendations_NoBase(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}

func TestFormatters(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	compSet, err := engine.Compare(context.Background(), testProfiles(), regimes2024(t), CompareOptions{
		Templates: []string{"max_80c"},
	})
	require.NoError(t, err)
	compSet.ProfilesPath = "profiles.yaml"

	table := (&TableFormatter{}).Format(compSet)
	assert.Contains(t, table, "TAX REGIME PROFILE COMPARISON")
	assert.Contains(t, table, "Base Profile:    salaried")
	assert.Contains(t, table, "Profiles:        profiles.yaml")
	assert.Contains(t, table, "salaried (base)")
	assert.Contains(t, table, "₹8.50L")
	assert.Contains(t, table, "₹40,500")
	assert.Contains(t, table, "COMPARISON TO BASE")
	assert.Contains(t, table, "Best-Regime Tax:  -₹2,000 (-6.2%)")
	assert.Contains(t, table, "Cheaper Regime:   old (base: new)")
	assert.Contains(t, table, "RECOMMENDATIONS")

	compact := (&TableFormatter{}).FormatCompact(compSet)
	assert.Equal(t, "Base: salaried | salaried_max_80c: -₹2,000", compact)

	csvOut, err := (&CSVFormatter{}).Format(compSet)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(csvOut)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Profile", records[0][0])
	assert.Equal(t, []string{"salaried", "base", "850000.00", "40500", "32500", "new", "8000"}, records[1][:7])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "true", records[2][10])

	jsonOut, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Equal(t, "salaried", decoded["baseProfileName"])
	assert.Len(t, decoded["alternativeResults"], 1)
	assert.Contains(t, jsonOut, "\n  \"baseProfileName\"")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "1.25Cr", tf.formatDecimal(dec(12500000)))
	assert.Equal(t, "8.50L", tf.formatDecimal(dec(850000)))
	assert.Equal(t, "40,500", tf.formatDecimal(dec(40500)))
	assert.Equal(t, "+", tf.deltaSymbol(dec(1)))
	assert.Equal(t, "-", tf.deltaSymbol(dec(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "short", tf.truncate("short", 10))
}
