package breakeven

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAll(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	input := heavyDeductions()
	input.GrossIncome = dec(850000)

	combined, err := solver.SolveAll(context.Background(), Request{
		Input:     input,
		Regimes:   testRegimes(),
		MinIncome: dec(0),
		MaxIncome: dec(5000000),
	})
	require.NoError(t, err)

	require.NotNil(t, combined.Income)
	assert.Equal(t, TargetIncome, combined.Income.Target)
	require.NotNil(t, combined.Income.BreakEvenIncome)
	assert.InDelta(t, 1455000, combined.Income.BreakEvenIncome.InexactFloat64(), 10)

	require.NotNil(t, combined.Deduction)
	assert.Equal(t, TargetDeduction, combined.Deduction.Target)
	assert.True(t, combined.Deduction.RequiredDeduction.IsZero())

	require.Len(t, combined.Recommendations, 2)
	assert.True(t, strings.HasPrefix(combined.Recommendations[0], "Below ₹14,5"), combined.Recommendations[0])
	assert.Contains(t, combined.Recommendations[0], "the old is cheaper")
	assert.Equal(t, "The Old regime already costs no more than the New regime", combined.Recommendations[1])
}

func TestSolveAll_PartialFailure(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	// an empty income range fails the income search only
	combined, err := solver.SolveAll(context.Background(), Request{
		Input:   domain.TaxInput{GrossIncome: dec(850000)},
		Regimes: testRegimes(),
	})
	require.NoError(t, err)
	assert.Nil(t, combined.Income)
	require.NotNil(t, combined.Deduction)
	require.Len(t, combined.Recommendations, 1)
	assert.Contains(t, combined.Recommendations[0], "Section 80C")
}

func TestSolveAll_AllFail(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.SolveAll(context.Background(), Request{Regimes: testRegimes()})
	require.Error(t, err)

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "solve_all", beErr.Operation)
	assert.NotNil(t, beErr.Cause)
}

func TestSolveAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	input := heavyDeductions()
	input.GrossIncome = dec(850000)
	_, err := solver.SolveAll(ctx, Request{
		Input:     input,
		Regimes:   testRegimes(),
		MinIncome: dec(0),
		MaxIncome: dec(5000000),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecommendations_NoDeductionHelps(t *testing.T) {
	recs := generateRecommendations(&CombinedResult{
		Income:    &Result{Target: TargetIncome, CheaperBelow: domain.CheaperNew},
		Deduction: &Result{Target: TargetDeduction},
	})
	assert.Equal(t, []string{
		"The new regime is cheaper across the whole income range",
		"No amount of extra deductions makes the Old regime cheaper",
	}, recs)
}

func TestTableFormatter_Format(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{
		Target:  TargetDeduction,
		Input:   domain.TaxInput{GrossIncome: dec(850000)},
		Regimes: testRegimes(),
	})
	require.NoError(t, err)

	tf := &TableFormatter{}
	out := tf.Format(result)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Target:              deduction")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "Extra Section 80C:   ₹")
	assert.Contains(t, out, "AT THE BREAK-EVEN POINT")

	noCrossing := tf.Format(&Result{Target: TargetIncome, ConvergenceInfo: "new regime is never beaten in the range"})
	assert.Contains(t, noCrossing, "⚠ Did not converge")
	assert.Contains(t, noCrossing, "No crossover found in the income range")
	assert.NotContains(t, noCrossing, "AT THE BREAK-EVEN POINT")
}

func TestTableFormatter_FormatCombined(t *testing.T) {
	combined := &CombinedResult{
		Deduction:       &Result{Target: TargetDeduction},
		Recommendations: []string{"No amount of extra deductions makes the Old regime cheaper"},
	}
	out := (&TableFormatter{}).FormatCombined(combined)
	assert.Contains(t, out, "REQUIRED DEDUCTION")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• No amount of extra deductions")
	assert.NotContains(t, out, "INCOME CROSSOVER")
}

func TestJSONFormatter(t *testing.T) {
	required := dec(200000)
	result := &Result{Target: TargetDeduction, Success: true, RequiredDeduction: &required}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"target\": \"deduction\"")

	compact, err := (&JSONFormatter{}).FormatCombined(&CombinedResult{Deduction: result, Recommendations: []string{"x"}})
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(compact), &decoded))
	assert.Contains(t, decoded, "deduction")
	assert.NotContains(t, decoded, "income")
}
