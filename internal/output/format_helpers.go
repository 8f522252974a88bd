package output

import (
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// FormatIndianNumber rounds to whole rupees and groups digits the Indian way:
// the last three digits, then pairs (12,34,567).
func FormatIndianNumber(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}
	if negative {
		return "-" + grouped
	}
	return grouped
}

// FormatRupees formats an amount as whole rupees with the rupee sign
func FormatRupees(amount decimal.Decimal) string {
	if amount.Round(0).IsNegative() {
		return "-₹" + FormatIndianNumber(amount.Abs())
	}
	return "₹" + FormatIndianNumber(amount)
}

// FormatPercentage formats a percentage value with one decimal
func FormatPercentage(percent decimal.Decimal) string {
	return percent.StringFixed(1) + "%"
}

// FormatRate formats a fractional rate (0.05) as a percentage (5%)
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// AmountInWords spells a whole-rupee amount, e.g. "Rupees thirty-two thousand five hundred only"
func AmountInWords(amount decimal.Decimal) string {
	rupees := amount.Round(0).Abs().IntPart()
	words := num2words.Convert(int(rupees))
	if amount.Round(0).IsNegative() {
		words = "minus " + words
	}
	return "Rupees " + words + " only"
}
