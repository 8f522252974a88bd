package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profiles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX REGIME PROFILE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Profile:    %s\n", compSet.BaseProfileName))
	sb.WriteString(fmt.Sprintf("Assessment Year: %s\n", compSet.AssessmentYear))
	if compSet.ProfilesPath != "" {
		sb.WriteString(fmt.Sprintf("Profiles:        %s\n", compSet.ProfilesPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Profile",
		numWidth, "Income",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Cheaper"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	if base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ProfileName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Best-Regime Tax:  %s%s (%s%%)\n",
				tf.deltaSymbol(alt.TaxDiffFromBase),
				output.FormatRupees(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))

			if alt.CheaperChanged {
				sb.WriteString(fmt.Sprintf("  Cheaper Regime:   %s (base: %s)\n", alt.Cheaper, base.Cheaper))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single profile row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ProfileName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "₹"+tf.formatDecimal(result.TotalIncome),
		numWidth, "₹"+tf.formatDecimal(result.OldTax),
		numWidth, "₹"+tf.formatDecimal(result.NewTax),
		numWidth, string(result.Cheaper))
}

var (
	crore = decimal.NewFromInt(10000000)
	lakh  = decimal.NewFromInt(100000)
)

// formatDecimal abbreviates amounts in lakhs (L) and crores (Cr)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(crore) {
		return d.Div(crore).StringFixed(2) + "Cr"
	} else if d.Abs().GreaterThanOrEqual(lakh) {
		return d.Div(lakh).StringFixed(2) + "L"
	}
	return output.FormatIndianNumber(d)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each profile
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseProfileName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		taxChange := "="
		if alt.TaxDiffFromBase.IsPositive() {
			taxChange = "+" + output.FormatRupees(alt.TaxDiffFromBase)
		} else if alt.TaxDiffFromBase.IsNegative() {
			taxChange = output.FormatRupees(alt.TaxDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ProfileName, taxChange))
	}

	return sb.String()
}
