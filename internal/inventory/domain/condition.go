package domain

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// FieldTypeDate is never assignable to a FieldDefinition; it exists for
// conditions against the createdAt system field.
const FieldTypeDate FieldType = "date"

type Operator string

const (
	OperatorEquals         Operator = "equals"
	OperatorNotEquals      Operator = "notEquals"
	OperatorContains       Operator = "contains"
	OperatorStartsWith     Operator = "startsWith"
	OperatorEndsWith       Operator = "endsWith"
	OperatorGreater        Operator = "greater"
	OperatorLess           Operator = "less"
	OperatorGreaterOrEqual Operator = "greaterOrEqual"
	OperatorLessOrEqual    Operator = "lessOrEqual"
	OperatorBetween        Operator = "between"
	OperatorIn             Operator = "in"
	OperatorNotIn          Operator = "notIn"
	OperatorAfter          Operator = "after"
	OperatorBefore         Operator = "before"
)

// Condition is one (field, operator, value) filter clause. Field is either a
// FieldDefinition id or a reserved system field name; FieldType is the cached
// type of the referenced definition and selects the comparison semantics.
type Condition struct {
	Field     string
	Operator  Operator
	Value     any
	FieldType FieldType
}

// Evaluate reports whether the record satisfies every condition. Conditions
// combine with logical AND only; there is no OR or grouping.
func Evaluate(record Record, conditions []Condition) bool {
	for _, condition := range conditions {
		if !matches(record, condition) {
			return false
		}
	}
	return true
}

// ApplyAll filters records preserving their relative order.
func ApplyAll(records []Record, conditions []Condition) []Record {
	result := make([]Record, 0, len(records))
	for _, record := range records {
		if Evaluate(record, conditions) {
			result = append(result, record)
		}
	}
	return result
}

func matches(record Record, condition Condition) bool {
	value, ok := record.SystemValue(condition.Field)
	if !ok {
		value = record.DynamicData[condition.Field]
	}

	if value == nil {
		// A missing value only matches an equals check against an
		// equally empty filter value.
		return condition.Operator == OperatorEquals && isEmpty(condition.Value)
	}

	if condition.FieldType == FieldTypeSelect &&
		(condition.Operator == OperatorIn || condition.Operator == OperatorNotIn) {
		return matchSet(value, condition)
	}

	switch condition.FieldType {
	case FieldTypeNumber, FieldTypeMoney:
		return matchNumber(value, condition)
	case FieldTypeCheckbox:
		return matchBool(value, condition)
	case FieldTypeDate:
		return matchDate(value, condition)
	default:
		return matchText(value, condition)
	}
}

func matchText(value any, condition Condition) bool {
	left := strings.ToLower(stringify(value))
	right := strings.ToLower(stringify(condition.Value))

	switch condition.Operator {
	case OperatorEquals:
		return left == right
	case OperatorNotEquals:
		return left != right
	case OperatorContains:
		return strings.Contains(left, right)
	case OperatorStartsWith:
		return strings.HasPrefix(left, right)
	case OperatorEndsWith:
		return strings.HasSuffix(left, right)
	default:
		return unknownOperator(condition)
	}
}

func matchNumber(value any, condition Condition) bool {
	left := toFloat(value)

	switch condition.Operator {
	case OperatorEquals:
		return left == toFloat(condition.Value)
	case OperatorNotEquals:
		return left != toFloat(condition.Value)
	case OperatorGreater:
		return left > toFloat(condition.Value)
	case OperatorLess:
		return left < toFloat(condition.Value)
	case OperatorGreaterOrEqual:
		return left >= toFloat(condition.Value)
	case OperatorLessOrEqual:
		return left <= toFloat(condition.Value)
	case OperatorBetween:
		min, max, ok := toRange(condition.Value)
		if !ok {
			return false
		}
		return left >= toFloat(min) && left <= toFloat(max)
	default:
		return unknownOperator(condition)
	}
}

func matchBool(value any, condition Condition) bool {
	left := toBool(value)

	switch condition.Operator {
	case OperatorEquals:
		return left == toBool(condition.Value)
	case OperatorNotEquals:
		return left != toBool(condition.Value)
	default:
		return unknownOperator(condition)
	}
}

// matchSet tests exact membership against option strings; case is NOT
// normalized here, unlike the text operators.
func matchSet(value any, condition Condition) bool {
	needle := stringify(value)
	var contained bool
	for _, candidate := range toSlice(condition.Value) {
		if stringify(candidate) == needle {
			contained = true
			break
		}
	}

	if condition.Operator == OperatorIn {
		return contained
	}
	return !contained
}

func matchDate(value any, condition Condition) bool {
	left, ok := toTime(value)
	if !ok {
		return false
	}

	switch condition.Operator {
	case OperatorEquals:
		right, ok := toTime(condition.Value)
		return ok && left.Equal(right)
	case OperatorNotEquals:
		right, ok := toTime(condition.Value)
		return ok && !left.Equal(right)
	case OperatorAfter:
		right, ok := toTime(condition.Value)
		return ok && left.After(right)
	case OperatorBefore:
		right, ok := toTime(condition.Value)
		return ok && left.Before(right)
	case OperatorBetween:
		minVal, maxVal, ok := toRange(condition.Value)
		if !ok {
			return false
		}
		min, okMin := toTime(minVal)
		max, okMax := toTime(maxVal)
		return okMin && okMax && !left.Before(min) && !left.After(max)
	default:
		return unknownOperator(condition)
	}
}

// unknownOperator preserves the originating fail-open behavior: an
// unrecognized operator matches. Logged because silently widening a filter
// is a correctness risk.
func unknownOperator(condition Condition) bool {
	slog.Warn("unknown filter operator, condition treated as satisfied",
		slog.String("operator", string(condition.Operator)),
		slog.String("field", condition.Field))
	return true
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat parses both operands as floating point; parse failures coerce
// to 0, matching the source behavior.
func toFloat(value any) float64 {
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

func toBool(value any) bool {
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

func toSlice(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		result := make([]any, len(v))
		for i, s := range v {
			result[i] = s
		}
		return result
	default:
		return []any{v}
	}
}

// toRange unpacks a {min,max} pair or a 2-element sequence.
func toRange(value any) (any, any, bool) {
	switch v := value.(type) {
	case map[string]any:
		min, okMin := v["min"]
		max, okMax := v["max"]
		return min, max, okMin && okMax
	case []any:
		if len(v) == 2 {
			return v[0], v[1], true
		}
		return nil, nil, false
	default:
		return nil, nil, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
