package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	switch result.Target {
	case TargetIncome:
		sb.WriteString("INCOME CROSSOVER\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		if result.BreakEvenIncome != nil {
			sb.WriteString(fmt.Sprintf("Break-even Income:   %s\n", output.FormatRupees(*result.BreakEvenIncome)))
			sb.WriteString(fmt.Sprintf("Cheaper Below:       %s\n", regimeLabel(result.Comparison, result.CheaperBelow)))
			sb.WriteString(fmt.Sprintf("Cheaper From There:  %s\n", regimeLabel(result.Comparison, result.CheaperAbove)))
		} else {
			sb.WriteString("No crossover found in the income range\n")
		}
	case TargetDeduction:
		sb.WriteString("REQUIRED DEDUCTION\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		if result.RequiredDeduction != nil {
			sb.WriteString(fmt.Sprintf("Extra Section 80C:   %s\n", output.FormatRupees(*result.RequiredDeduction)))
		} else {
			sb.WriteString("No deduction makes the Old regime competitive\n")
		}
	}
	sb.WriteString("\n")

	if c := result.Comparison; c != nil {
		sb.WriteString("AT THE BREAK-EVEN POINT\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		sb.WriteString(fmt.Sprintf("%-20s %s\n", c.Old.Label+":", output.FormatRupees(c.Old.TaxPayable)))
		sb.WriteString(fmt.Sprintf("%-20s %s\n", c.New.Label+":", output.FormatRupees(c.New.TaxPayable)))
		sb.WriteString(fmt.Sprintf("%-20s %s%s\n", "Difference:",
			tf.deltaSymbol(c.Old.TaxPayable.Sub(c.New.TaxPayable)), output.FormatRupees(c.Savings)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatCombined formats the results of SolveAll
func (tf *TableFormatter) FormatCombined(result *CombinedResult) string {
	var sb strings.Builder

	if result.Income != nil {
		sb.WriteString(tf.Format(result.Income))
	}
	if result.Deduction != nil {
		sb.WriteString(tf.Format(result.Deduction))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatCombined formats combined results as JSON
func (jf *JSONFormatter) FormatCombined(result *CombinedResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

// deltaSymbol marks whether the Old regime costs more (+) or less (-)
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}
