package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// RebateApplies reports whether taxable income falls within the regime's
// rebate threshold. The threshold is inclusive.
func RebateApplies(taxable decimal.Decimal, regime domain.RegimeConfig) bool {
	return regime.RebateEnabled && taxable.LessThanOrEqual(regime.RebateThreshold)
}

// ApplyRebate zeroes the tax when the rebate applies and otherwise returns it
// unchanged. There is no marginal relief: one rupee over the threshold pays
// the full slab tax.
func ApplyRebate(taxBeforeRebate, taxable decimal.Decimal, regime domain.RegimeConfig) decimal.Decimal {
	if RebateApplies(taxable, regime) {
		return decimal.Zero
	}
	return taxBeforeRebate
}
