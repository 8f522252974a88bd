package calculation

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// hraRentOffsetRate is the share of basic salary subtracted from rent paid
	hraRentOffsetRate = decimal.NewFromFloat(0.10)
	// hraBasicCapRate is the non-metro cap on HRA exemption as a share of basic salary
	hraBasicCapRate = decimal.NewFromFloat(0.40)
)

// ComputeHRAExemption returns the least of the HRA actually received, rent
// paid in excess of 10% of basic salary, and 40% of basic salary.
// Any zero input yields a zero exemption.
func ComputeHRAExemption(hraReceived, rentPaid, basicSalary decimal.Decimal) decimal.Decimal {
	hraReceived = domain.NonNegative(hraReceived)
	rentPaid = domain.NonNegative(rentPaid)
	basicSalary = domain.NonNegative(basicSalary)

	rentExcess := domain.NonNegative(rentPaid.Sub(basicSalary.Mul(hraRentOffsetRate)))
	basicCap := basicSalary.Mul(hraBasicCapRate)

	return decimal.Min(hraReceived, rentExcess, basicCap)
}
