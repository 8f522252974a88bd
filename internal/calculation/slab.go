package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeSlabTax walks the slab table in ascending order and taxes the
// portion of income falling inside each slab at that slab's rate.
// Negative taxable income is treated as zero. The table is validated first
// so a malformed table fails instead of producing a number.
func ComputeSlabTax(taxable decimal.Decimal, slabs domain.SlabTable) (decimal.Decimal, error) {
	breakdown, err := ComputeSlabBreakdown(taxable, slabs)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, part := range breakdown {
		total = total.Add(part.Tax)
	}
	return total, nil
}

// ComputeSlabBreakdown returns the per-slab portions of the walk used by
// ComputeSlabTax. Slabs above the taxable amount are omitted.
func ComputeSlabBreakdown(taxable decimal.Decimal, slabs domain.SlabTable) ([]domain.SlabTax, error) {
	if err := slabs.Validate(); err != nil {
		return nil, fmt.Errorf("progressive tax: %w", err)
	}
	taxable = domain.NonNegative(taxable)

	var breakdown []domain.SlabTax
	previousBound := decimal.Zero
	for _, slab := range slabs {
		top := taxable
		if slab.UpperBound != nil {
			top = decimal.Min(*slab.UpperBound, taxable)
		}
		portion := domain.NonNegative(top.Sub(previousBound))

		part := domain.SlabTax{
			LowerBound:  previousBound,
			Rate:        slab.Rate,
			TaxedAmount: portion,
			Tax:         portion.Mul(slab.Rate),
		}
		if slab.UpperBound != nil {
			ub := *slab.UpperBound
			part.UpperBound = &ub
		}
		breakdown = append(breakdown, part)

		if slab.UpperBound == nil || taxable.LessThanOrEqual(*slab.UpperBound) {
			break
		}
		previousBound = *slab.UpperBound
	}
	return breakdown, nil
}
