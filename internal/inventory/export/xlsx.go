package export

import (
	"fmt"
	"io"
	"time"

	"inventar-server/internal/inventory/domain"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheet       = "Sheet1"
	xlsxColumnWidth = 25.0
	xlsxHeaderFill  = "#D9D9D9"
)

// WriteXLSX serializes the table as a workbook: bold header row on a light
// gray fill, uniform column widths. Numeric values are written as native
// number cells; everything else is rendered the same way as CSV.
func WriteXLSX(w io.Writer, table Table) error {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{xlsxHeaderFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headerRow := make([]any, len(table.Headers))
	for i, header := range table.Headers {
		headerRow[i] = header
	}
	if err := file.SetSheetRow(xlsxSheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	lastColumn, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return fmt.Errorf("resolving last column: %w", err)
	}
	if err := file.SetCellStyle(xlsxSheet, "A1", lastColumn+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}
	if err := file.SetColWidth(xlsxSheet, "A", lastColumn, xlsxColumnWidth); err != nil {
		return fmt.Errorf("setting column widths: %w", err)
	}

	for i, row := range table.Rows {
		values := make([]any, len(row))
		for j, cell := range row {
			values[j] = xlsxCellValue(cell)
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving row anchor: %w", err)
		}
		if err := file.SetSheetRow(xlsxSheet, anchor, &values); err != nil {
			return fmt.Errorf("writing data row: %w", err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func xlsxCellValue(cell Cell) any {
	if cell.Value == nil {
		return ""
	}

	switch cell.Type {
	case domain.FieldTypeNumber, domain.FieldTypeMoney:
		return asFloat(cell.Value)
	case domain.FieldTypeDate:
		if t, ok := cell.Value.(time.Time); ok {
			return t.Format(dateTimeDisplay)
		}
		return asString(cell.Value)
	default:
		return renderCell(cell)
	}
}
