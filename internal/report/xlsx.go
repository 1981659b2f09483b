package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
)

// WriteXLSX writes each report as a sheet of one workbook.
func WriteXLSX(w io.Writer, reports ...Report) error {
	file := xlsx.NewFile()

	for _, r := range reports {
		sheet, err := file.AddSheet(r.Title)
		if err != nil {
			return fmt.Errorf("adding sheet %s: %w", r.Title, err)
		}

		headerRow := sheet.AddRow()
		for _, header := range r.Headers {
			cell := headerRow.AddCell()
			cell.Value = header
			cell.GetStyle().Font.Bold = true
			cell.GetStyle().Fill.PatternType = "solid"
			cell.GetStyle().Fill.FgColor = "CCCCCC"
		}

		for _, row := range r.Rows {
			dataRow := sheet.AddRow()
			for _, v := range row {
				setCell(dataRow.AddCell(), v)
			}
		}

		for i := range r.Headers {
			sheet.SetColWidth(i+1, i+1, 16)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(cell *xlsx.Cell, v any) {
	switch v := v.(type) {
	case int:
		cell.SetInt(v)
	case decimal.Decimal:
		f, _ := v.Float64()
		cell.SetFloatWithFormat(f, "0.00")
	default:
		cell.SetString(formatCell(v))
	}
}
