package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// CSVFormatter writes one row per regime.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Profile", "AssessmentYear", "Regime", "GrossTotal", "TotalDeductions", "HRAExemption",
	"TaxableIncome", "TaxBeforeRebate", "RebateApplied", "TaxPayable", "SharePercent", "Cheaper",
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	comparison := report.Comparison
	rows := []struct {
		result domain.TaxResult
		share  string
	}{
		{comparison.Old, report.Distribution.OldPercent.StringFixed(1)},
		{comparison.New, report.Distribution.NewPercent.StringFixed(1)},
	}
	for _, r := range rows {
		row := []string{
			report.ProfileName,
			report.AssessmentYear,
			string(r.result.Regime),
			r.result.GrossTotal.StringFixed(2),
			r.result.TotalDeductions.StringFixed(2),
			r.result.HRAExemption.StringFixed(2),
			r.result.TaxableIncome.StringFixed(2),
			r.result.TaxBeforeRebate.StringFixed(2),
			strconv.FormatBool(r.result.RebateApplied),
			r.result.TaxPayable.StringFixed(0),
			r.share,
			string(comparison.Cheaper),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
