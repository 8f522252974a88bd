package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// ConsoleFormatter renders the comparison report as plain text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	comparison := report.Comparison
	input := comparison.Input

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf, strings.ToUpper(report.Title))
	if report.ProfileName != "" {
		fmt.Fprintf(&buf, "Profile: %s\n", report.ProfileName)
	}
	fmt.Fprintf(&buf, "Assessment year: %s\n", report.AssessmentYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PERSONAL & INCOME DETAILS")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Annual Income:", FormatRupees(input.GrossIncome))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Other Income:", FormatRupees(input.OtherIncome))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Section 80C:", FormatRupees(input.Section80C))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Section 80D:", FormatRupees(input.Section80D))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "HRA Received:", FormatRupees(input.HRAReceived))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Rent Paid:", FormatRupees(input.RentPaid))
	fmt.Fprintf(&buf, "  %-26s %16s\n", "Basic Salary:", FormatRupees(input.BasicSalary))
	fmt.Fprintf(&buf, "  %-26s %16d\n", "Age:", input.Age)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "REGIME BREAKDOWN")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	fmt.Fprintf(&buf, "  %-22s %18s %18s\n", "", comparison.Old.Label, comparison.New.Label)
	row := func(label, oldValue, newValue string) {
		fmt.Fprintf(&buf, "  %-22s %18s %18s\n", label, oldValue, newValue)
	}
	row("HRA Exemption", FormatRupees(comparison.Old.HRAExemption), FormatRupees(comparison.New.HRAExemption))
	row("Other Exemptions", FormatRupees(OtherExemptions(comparison.Old)), FormatRupees(OtherExemptions(comparison.New)))
	row("Total Deductions", FormatRupees(comparison.Old.TotalDeductions), FormatRupees(comparison.New.TotalDeductions))
	row("Taxable Income", FormatRupees(comparison.Old.TaxableIncome), FormatRupees(comparison.New.TaxableIncome))
	row("Tax Before Rebate", FormatRupees(comparison.Old.TaxBeforeRebate), FormatRupees(comparison.New.TaxBeforeRebate))
	row("87A Rebate", yesNo(comparison.Old.RebateApplied), yesNo(comparison.New.RebateApplied))
	row("Tax Payable", FormatRupees(comparison.Old.TaxPayable), FormatRupees(comparison.New.TaxPayable))
	fmt.Fprintln(&buf)

	writeSlabs(&buf, comparison.Old)
	writeSlabs(&buf, comparison.New)

	fmt.Fprintln(&buf, "TAX DISTRIBUTION SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 64))
	fmt.Fprintf(&buf, "  %s: %s (%s)\n", comparison.Old.Label, FormatRupees(comparison.Old.TaxPayable), FormatPercentage(report.Distribution.OldPercent))
	fmt.Fprintf(&buf, "  %s: %s (%s)\n", comparison.New.Label, FormatRupees(comparison.New.TaxPayable), FormatPercentage(report.Distribution.NewPercent))
	fmt.Fprintf(&buf, "  Total: %s\n", FormatRupees(report.Distribution.Total))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "RECOMMENDATION: %s\n", report.Recommendation)
	if comparison.Cheaper != domain.CheaperEqual {
		fmt.Fprintf(&buf, "  (%s)\n", report.SavingsInWords)
	}
	return buf.Bytes(), nil
}

func writeSlabs(buf *bytes.Buffer, result domain.TaxResult) {
	if len(result.SlabBreakdown) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s SLABS\n", strings.ToUpper(result.Label))
	fmt.Fprintln(buf, strings.Repeat("-", 64))
	for _, slab := range result.SlabBreakdown {
		upper := "and above"
		if slab.UpperBound != nil {
			upper = "to " + FormatRupees(*slab.UpperBound)
		}
		fmt.Fprintf(buf, "  %-30s @ %-5s %16s\n",
			FormatRupees(slab.LowerBound)+" "+upper, FormatRate(slab.Rate), FormatRupees(slab.Tax))
	}
	fmt.Fprintln(buf)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
