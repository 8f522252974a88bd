package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeSweep_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sweep   IncomeSweep
		wantErr string
	}{
		{"valid", IncomeSweep{From: dec(0), To: dec(1000000), Step: dec(100000)}, ""},
		{"negative start", IncomeSweep{From: dec(-1), To: dec(10), Step: dec(1)}, "cannot be negative"},
		{"reversed", IncomeSweep{From: dec(10), To: dec(5), Step: dec(1)}, "below start"},
		{"zero step", IncomeSweep{From: dec(0), To: dec(10), Step: dec(0)}, "must be positive"},
		{"too many points", IncomeSweep{From: dec(0), To: dec(10000000), Step: dec(1)}, "max"},
		{"count beyond int64", IncomeSweep{From: dec(0), To: decimal.New(1, 19), Step: dec(1)}, "max"},
		{"tiny step", IncomeSweep{From: dec(0), To: dec(1000000), Step: decimal.New(1, -30)}, "max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sweep.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIncomeSweep_Points(t *testing.T) {
	assert.Equal(t, int64(11), IncomeSweep{From: dec(0), To: dec(1000000), Step: dec(100000)}.Points())
	assert.Equal(t, int64(3), IncomeSweep{From: dec(0), To: dec(250), Step: dec(100)}.Points())
	assert.Equal(t, int64(0), IncomeSweep{From: dec(0), To: dec(10), Step: dec(0)}.Points())
	assert.Equal(t, int64(math.MaxInt64), IncomeSweep{From: dec(0), To: decimal.New(1, 25), Step: dec(1)}.Points())
}

func TestSweep(t *testing.T) {
	engine := NewCalculationEngine()
	base := scenarioBInput()

	points, err := engine.Sweep(context.Background(), base, regimes2024(), domain.EvaluationOptions{},
		IncomeSweep{From: dec(850000), To: dec(1000000), Step: dec(150000)})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assertDecimal(t, "850000", points[0].GrossIncome)
	assertDecimal(t, "40500", points[0].OldTax)
	assertDecimal(t, "32500", points[0].NewTax)
	assert.Equal(t, domain.CheaperNew, points[0].Cheaper)
	assertDecimal(t, "8000", points[0].Savings)

	assertDecimal(t, "70500", points[1].OldTax)
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCalculationEngine().Sweep(ctx, domain.TaxInput{}, regimes2024(), domain.EvaluationOptions{},
		IncomeSweep{From: dec(0), To: dec(100), Step: dec(10)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep_HugeRange(t *testing.T) {
	_, err := NewCalculationEngine().Sweep(context.Background(), domain.TaxInput{}, regimes2024(), domain.EvaluationOptions{},
		IncomeSweep{From: dec(0), To: decimal.New(1, 19), Step: dec(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSweep)
}

func TestSweep_InvalidRange(t *testing.T) {
	_, err := NewCalculationEngine().Sweep(context.Background(), domain.TaxInput{}, regimes2024(), domain.EvaluationOptions{},
		IncomeSweep{From: dec(10), To: dec(0), Step: dec(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSweep)
	assert.Contains(t, err.Error(), "invalid income sweep: sweep end 0 is below start 10")
}
