package export

import (
	"sort"
	"time"

	"inventar-server/internal/inventory/domain"
)

// Header labels for the four fixed system columns.
var SystemHeaders = []string{"Инвентарный номер", "Штрихкод", "Владелец", "Дата создания"}

// Cell pairs a raw value with the field type that dictates its rendering.
// Value is nil when the record carries no value for the column.
type Cell struct {
	Value any
	Type  domain.FieldType
}

// Table is the intermediate tabular form shared by the CSV and XLSX writers.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// BuildTable lays out the export table: four system columns followed by one
// column per selected definition in SortOrder ascending. An empty selection
// means every definition, not zero columns.
func BuildTable(records []domain.Record, definitions []domain.FieldDefinition, selectedFieldIDs []string) Table {
	selected := selectDefinitions(definitions, selectedFieldIDs)

	headers := make([]string, 0, len(SystemHeaders)+len(selected))
	headers = append(headers, SystemHeaders...)
	for _, definition := range selected {
		headers = append(headers, definition.Name.String())
	}

	rows := make([][]Cell, 0, len(records))
	for _, record := range records {
		row := make([]Cell, 0, len(headers))
		row = append(row,
			Cell{Value: record.InventoryNumber, Type: domain.FieldTypeText},
			Cell{Value: record.Barcode, Type: domain.FieldTypeText},
			Cell{Value: record.OwnerName, Type: domain.FieldTypeText},
			Cell{Value: record.CreatedAt.Time, Type: domain.FieldTypeDate},
		)
		for _, definition := range selected {
			value := record.DynamicData[definition.ID.String()]
			row = append(row, Cell{Value: value, Type: definition.Type})
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

func selectDefinitions(definitions []domain.FieldDefinition, selectedFieldIDs []string) []domain.FieldDefinition {
	ordered := make([]domain.FieldDefinition, len(definitions))
	copy(ordered, definitions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	if len(selectedFieldIDs) == 0 {
		return ordered
	}

	wanted := make(map[string]struct{}, len(selectedFieldIDs))
	for _, id := range selectedFieldIDs {
		wanted[id] = struct{}{}
	}

	result := make([]domain.FieldDefinition, 0, len(selectedFieldIDs))
	for _, definition := range ordered {
		if _, ok := wanted[definition.ID.String()]; ok {
			result = append(result, definition)
		}
	}
	return result
}

// renderCell is the export rendering: absent values become empty strings,
// never the "-" placeholder used for interactive display.
func renderCell(cell Cell) string {
	if cell.Value == nil {
		return ""
	}
	if t, ok := cell.Value.(time.Time); ok {
		return t.Format(dateTimeDisplay)
	}
	return FormatForDisplay(cell.Value, cell.Type)
}
