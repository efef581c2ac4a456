package export

import (
	"fmt"
	"strconv"
	"time"

	"inventar-server/internal/inventory/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	displayEmpty    = "-"
	displayYes      = "Да"
	displayNo       = "Нет"
	currencySuffix  = "₽"
	dateTimeDisplay = "02.01.2006 15:04"
)

var printer = message.NewPrinter(language.Russian)

// FormatForDisplay renders a dynamic value to its display string. Grouping
// and decimal separators follow ru-RU convention.
func FormatForDisplay(value any, fieldType domain.FieldType) string {
	if value == nil {
		return displayEmpty
	}

	switch fieldType {
	case domain.FieldTypeMoney:
		return formatNumber(value) + " " + currencySuffix
	case domain.FieldTypeNumber:
		return formatNumber(value)
	case domain.FieldTypeCheckbox:
		if asBool(value) {
			return displayYes
		}
		return displayNo
	case domain.FieldTypeDate:
		if t, ok := value.(time.Time); ok {
			return t.Format(dateTimeDisplay)
		}
		return asString(value)
	default:
		return asString(value)
	}
}

func formatNumber(value any) string {
	return printer.Sprint(number.Decimal(asFloat(value)))
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
