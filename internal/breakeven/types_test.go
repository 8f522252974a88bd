package breakeven

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("income")
	require.NoError(t, err)
	assert.Equal(t, TargetIncome, target)

	target, err = ParseTarget("deduction")
	require.NoError(t, err)
	assert.Equal(t, TargetDeduction, target)

	_, err = ParseTarget("retirement_date")
	assert.Error(t, err)
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"valid income", Request{Target: TargetIncome, MinIncome: dec(0), MaxIncome: dec(10)}, ""},
		{"valid deduction", Request{Target: TargetDeduction, Input: domain.TaxInput{GrossIncome: dec(1)}}, ""},
		{"negative min", Request{Target: TargetIncome, MinIncome: dec(-1), MaxIncome: dec(10)}, "min income cannot be negative"},
		{"empty range", Request{Target: TargetIncome, MinIncome: dec(10), MaxIncome: dec(10)}, "max income must exceed"},
		{"no income for deduction", Request{Target: TargetDeduction}, "income must be positive"},
		{"unknown target", Request{Target: "ss_age"}, "unsupported target"},
		{"negative iterations", Request{Target: TargetIncome, MaxIncome: dec(10), MaxIterations: -1}, "max iterations"},
		{"negative tolerance", Request{Target: TargetIncome, MaxIncome: dec(10), Tolerance: decimal.NewFromInt(-1)}, "tolerance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var beErr *BreakEvenError
			require.True(t, errors.As(err, &beErr))
			assert.Equal(t, "validate_request", beErr.Operation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()
	assert.Equal(t, 50, opts.GridResolution)
	assert.Equal(t, 100, opts.MaxIterations)
	assert.True(t, opts.Tolerance.Equal(decimal.NewFromInt(1)))
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "compare", Message: "failed", Cause: cause}

	assert.Equal(t, "compare: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "op: msg", (&BreakEvenError{Operation: "op", Message: "msg"}).Error())
}

func TestRequest_WithDefaultRange(t *testing.T) {
	filled := Request{}.WithDefaultRange()
	assert.True(t, filled.MinIncome.IsZero())
	assert.True(t, DefaultMaxIncome.Equal(filled.MaxIncome))

	explicit := Request{MinIncome: decimal.NewFromInt(100), MaxIncome: decimal.NewFromInt(200)}.WithDefaultRange()
	assert.True(t, decimal.NewFromInt(200).Equal(explicit.MaxIncome))
}
