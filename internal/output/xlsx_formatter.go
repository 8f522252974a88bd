package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	slabsSheet   = "Slabs"
)

// XLSXFormatter writes the comparison as a workbook with a Summary sheet and a Slabs sheet.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(slabsSheet); err != nil {
		return nil, fmt.Errorf("failed to create slabs sheet: %w", err)
	}
	if err := writeSlabsSheet(f, report.Comparison); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *Report) error {
	c := report.Comparison
	rows := [][]interface{}{
		{"Field", c.Old.Label, c.New.Label},
		{"Assessment Year", c.Old.AssessmentYear, c.New.AssessmentYear},
		{"Gross Total", c.Old.GrossTotal.InexactFloat64(), c.New.GrossTotal.InexactFloat64()},
		{"HRA Exemption", c.Old.HRAExemption.InexactFloat64(), c.New.HRAExemption.InexactFloat64()},
		{"Total Deductions", c.Old.TotalDeductions.InexactFloat64(), c.New.TotalDeductions.InexactFloat64()},
		{"Taxable Income", c.Old.TaxableIncome.InexactFloat64(), c.New.TaxableIncome.InexactFloat64()},
		{"Tax Before Rebate", c.Old.TaxBeforeRebate.InexactFloat64(), c.New.TaxBeforeRebate.InexactFloat64()},
		{"Rebate Applied", c.Old.RebateApplied, c.New.RebateApplied},
		{"Tax Payable", c.Old.TaxPayable.IntPart(), c.New.TaxPayable.IntPart()},
		{"Share of Total (%)", report.Distribution.OldPercent.Round(1).InexactFloat64(), report.Distribution.NewPercent.Round(1).InexactFloat64()},
		{},
		{"Recommendation", report.Recommendation},
		{"Savings", c.Savings.IntPart(), report.SavingsInWords},
	}
	return writeRows(f, summarySheet, rows)
}

func writeSlabsSheet(f *excelize.File, c *domain.RegimeComparison) error {
	rows := [][]interface{}{{"Regime", "From", "To", "Rate (%)", "Taxed Amount", "Tax"}}
	for _, result := range []domain.TaxResult{c.Old, c.New} {
		for _, slab := range result.SlabBreakdown {
			var upper interface{} = "and above"
			if slab.UpperBound != nil {
				upper = slab.UpperBound.InexactFloat64()
			}
			rows = append(rows, []interface{}{
				result.Label,
				slab.LowerBound.InexactFloat64(),
				upper,
				slab.Rate.Mul(hundred).InexactFloat64(),
				slab.TaxedAmount.InexactFloat64(),
				slab.Tax.InexactFloat64(),
			})
		}
	}
	return writeRows(f, slabsSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
