package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Type",
		"Total Income",
		"Old Regime Tax",
		"New Regime Tax",
		"Cheaper",
		"Savings",
		"Effective Rate %",
		"Tax Diff from Base",
		"Tax % Change",
		"Cheaper Changed",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, profileType string) []string {
	return []string{
		result.ProfileName,
		profileType,
		result.TotalIncome.StringFixed(2),
		result.OldTax.StringFixed(0),
		result.NewTax.StringFixed(0),
		string(result.Cheaper),
		result.Savings.StringFixed(0),
		result.EffectiveRate.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(0),
		result.TaxPctFromBase.StringFixed(2),
		strconv.FormatBool(result.CheaperChanged),
	}
}
