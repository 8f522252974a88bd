package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxSlab is one progressive bracket. A nil UpperBound marks the open-ended top slab.
type TaxSlab struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound" json:"upperBound"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the slab extends to infinity
func (s TaxSlab) IsUnbounded() bool {
	return s.UpperBound == nil
}

// SlabTable is an ordered, non-overlapping set of slabs covering [0, ∞).
// The first slab starts at 0.
type SlabTable []TaxSlab

// NewSlab is a convenience constructor for a bounded slab
func NewSlab(upperBound int64, rate float64) TaxSlab {
	ub := decimal.NewFromInt(upperBound)
	return TaxSlab{UpperBound: &ub, Rate: decimal.NewFromFloat(rate)}
}

// NewTopSlab is a convenience constructor for the unbounded top slab
func NewTopSlab(rate float64) TaxSlab {
	return TaxSlab{Rate: decimal.NewFromFloat(rate)}
}

// Validate checks the progressive-table invariants: bounds strictly increasing,
// only the last slab unbounded, rates within [0,1] and non-decreasing.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return &ConfigError{Field: "slabs", Message: "at least one slab is required"}
	}

	previousBound := decimal.Zero
	previousRate := decimal.Zero
	for i, slab := range t {
		field := fmt.Sprintf("slabs[%d]", i)

		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return &ConfigError{Field: field + ".rate", Message: fmt.Sprintf("rate %s must be between 0 and 1", slab.Rate.String())}
		}
		if i > 0 && slab.Rate.LessThan(previousRate) {
			return &ConfigError{Field: field + ".rate", Message: fmt.Sprintf("rate %s is lower than previous slab rate %s", slab.Rate.String(), previousRate.String())}
		}

		last := i == len(t)-1
		if slab.UpperBound == nil {
			if !last {
				return &ConfigError{Field: field + ".upper_bound", Message: "only the last slab may be unbounded"}
			}
		} else {
			if last {
				return &ConfigError{Field: field + ".upper_bound", Message: "last slab must be unbounded"}
			}
			if slab.UpperBound.LessThanOrEqual(previousBound) {
				return &ConfigError{Field: field + ".upper_bound", Message: fmt.Sprintf("bound %s must exceed previous bound %s", slab.UpperBound.String(), previousBound.String())}
			}
			previousBound = *slab.UpperBound
		}
		previousRate = slab.Rate
	}
	return nil
}

// RateAt returns the marginal rate applied to the rupee just below amount,
// i.e. the rate of the slab containing (amount-ε, amount].
func (t SlabTable) RateAt(amount decimal.Decimal) decimal.Decimal {
	for _, slab := range t {
		if slab.UpperBound == nil || amount.LessThanOrEqual(*slab.UpperBound) {
			return slab.Rate
		}
	}
	return decimal.Zero
}

// Clone returns a deep copy so callers can adjust bounds without touching the source
func (t SlabTable) Clone() SlabTable {
	if t == nil {
		return nil
	}
	out := make(SlabTable, len(t))
	for i, slab := range t {
		out[i] = TaxSlab{Rate: slab.Rate}
		if slab.UpperBound != nil {
			ub := *slab.UpperBound
			out[i].UpperBound = &ub
		}
	}
	return out
}

// SlabTax is the share of tax produced by a single slab
type SlabTax struct {
	LowerBound  decimal.Decimal  `json:"lowerBound"`
	UpperBound  *decimal.Decimal `json:"upperBound,omitempty"`
	Rate        decimal.Decimal  `json:"rate"`
	TaxedAmount decimal.Decimal  `json:"taxedAmount"`
	Tax         decimal.Decimal  `json:"tax"`
}
