package domain

import (
	"fmt"
)

// Validate checks a dynamic value map against the field schema snapshot and
// returns every violation at once; an empty slice means the data is
// acceptable. The baseline check is presence of required fields. Select
// values are additionally matched against the definition's options so a
// stale client cannot store a value outside the configured set.
func Validate(data DynamicData, definitions []FieldDefinition) []string {
	messages := make([]string, 0)

	for _, definition := range definitions {
		value, present := data[definition.ID.String()]

		if definition.IsRequired && isEmpty(value) {
			messages = append(messages, fmt.Sprintf("Field %q is required", definition.Name))
			continue
		}

		if !present || isEmpty(value) {
			continue
		}

		if definition.Type == FieldTypeSelect {
			if str, ok := value.(string); !ok || !definition.HasOption(str) {
				messages = append(messages, fmt.Sprintf("Field %q has an unknown option", definition.Name))
			}
		}
	}

	return messages
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return str == ""
	}
	return false
}
