package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSlabTax(t *testing.T) {
	slabs := newRegime2024().Slabs

	tests := []struct {
		name     string
		taxable  int64
		expected string
	}{
		{"zero income", 0, "0"},
		{"inside first slab", 250000, "0"},
		{"first boundary", 300000, "0"},
		{"second slab", 450000, "7500"},
		{"second boundary", 600000, "15000"},
		{"third slab", 775000, "32500"},
		{"third boundary", 900000, "45000"},
		{"fourth slab", 1000000, "60000"},
		{"top slab", 2000000, "300000"},
		{"negative clamps to zero", -50000, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := ComputeSlabTax(dec(tt.taxable), slabs)
			require.NoError(t, err)
			assertDecimal(t, tt.expected, tax)
		})
	}
}

func TestComputeSlabTax_OldRegime(t *testing.T) {
	tax, err := ComputeSlabTax(dec(790000), oldRegime2024().Slabs)
	require.NoError(t, err)
	assertDecimal(t, "70500", tax)
}

func TestComputeSlabTax_Monotonic(t *testing.T) {
	for _, slabs := range []domain.SlabTable{newRegime2024().Slabs, oldRegime2024().Slabs} {
		previous := decimal.Zero
		for income := int64(0); income <= 3000000; income += 12500 {
			tax, err := ComputeSlabTax(dec(income), slabs)
			require.NoError(t, err)
			assert.True(t, tax.GreaterThanOrEqual(previous), "tax dropped at %d", income)
			previous = tax
		}
	}
}

func TestComputeSlabTax_Continuity(t *testing.T) {
	slabs := newRegime2024().Slabs
	epsilon := decimal.RequireFromString("0.01")

	points := []int64{150000, 300000, 450000, 600000, 900000, 1200000, 1500000, 1750000}
	for _, p := range points {
		b := dec(p)
		atB, err := ComputeSlabTax(b, slabs)
		require.NoError(t, err)
		belowB, err := ComputeSlabTax(b.Sub(epsilon), slabs)
		require.NoError(t, err)

		expected := belowB.Add(epsilon.Mul(slabs.RateAt(b)))
		assert.True(t, expected.Equal(atB), "discontinuity at %d: %s vs %s", p, expected.String(), atB.String())
	}
}

func TestComputeSlabTax_MalformedTable(t *testing.T) {
	tests := []struct {
		name  string
		slabs domain.SlabTable
		field string
	}{
		{"empty", domain.SlabTable{}, "slabs"},
		{"negative rate", domain.SlabTable{domain.NewSlab(100, -0.1), domain.NewTopSlab(0.2)}, "slabs[0].rate"},
		{"rate above one", domain.SlabTable{domain.NewSlab(100, 0.1), domain.NewTopSlab(1.5)}, "slabs[1].rate"},
		{"decreasing rate", domain.SlabTable{domain.NewSlab(100, 0.2), domain.NewTopSlab(0.1)}, "slabs[1].rate"},
		{"non-increasing bound", domain.SlabTable{domain.NewSlab(100, 0), domain.NewSlab(100, 0.1), domain.NewTopSlab(0.2)}, "slabs[1].upper_bound"},
		{"bounded top", domain.SlabTable{domain.NewSlab(100, 0), domain.NewSlab(200, 0.1)}, "slabs[1].upper_bound"},
		{"unbounded middle", domain.SlabTable{domain.NewSlab(100, 0), domain.NewTopSlab(0.1), domain.NewTopSlab(0.2)}, "slabs[1].upper_bound"},
		{"zero first bound", domain.SlabTable{domain.NewSlab(0, 0), domain.NewTopSlab(0.2)}, "slabs[0].upper_bound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSlabTax(dec(1000), tt.slabs)
			require.Error(t, err)

			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr), "should be a ConfigError: %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestComputeSlabBreakdown(t *testing.T) {
	breakdown, err := ComputeSlabBreakdown(dec(775000), newRegime2024().Slabs)
	require.NoError(t, err)
	require.Len(t, breakdown, 3)

	assertDecimal(t, "300000", breakdown[0].TaxedAmount)
	assertDecimal(t, "0", breakdown[0].Tax)
	assertDecimal(t, "300000", breakdown[1].LowerBound)
	assertDecimal(t, "15000", breakdown[1].Tax)
	assertDecimal(t, "175000", breakdown[2].TaxedAmount)
	assertDecimal(t, "17500", breakdown[2].Tax)
	require.NotNil(t, breakdown[2].UpperBound)
	assertDecimal(t, "900000", *breakdown[2].UpperBound)
}

func TestComputeSlabBreakdown_TopSlabUnbounded(t *testing.T) {
	breakdown, err := ComputeSlabBreakdown(dec(2000000), newRegime2024().Slabs)
	require.NoError(t, err)
	require.Len(t, breakdown, 6)

	top := breakdown[5]
	assert.Nil(t, top.UpperBound)
	assertDecimal(t, "500000", top.TaxedAmount)
	assertDecimal(t, "150000", top.Tax)
}
