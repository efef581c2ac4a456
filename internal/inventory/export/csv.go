package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM makes spreadsheet tools detect the encoding and render cyrillic
// headers correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV serializes the table as UTF-8 CSV with a leading byte-order mark.
// Quoting and quote doubling are handled by encoding/csv.
func WriteCSV(w io.Writer, table Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for _, row := range table.Rows {
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = renderCell(cell)
		}
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("writing data row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
