package domain

import (
	"inventar-server/internal/infra/utils"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

// FieldDefinition is one administrator-configured dynamic attribute. The set
// of definitions is the source of truth for record validation, filtering and
// export column layout.
type FieldDefinition struct {
	ID         shareddomain.ID
	Name       shareddomain.Name
	Type       FieldType
	IsRequired bool
	Options    []string
	SortOrder  int
	CreatedAt  utils.Time
	UpdatedAt  utils.Time
}

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeMoney    FieldType = "money"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldTypeText, FieldTypeNumber, FieldTypeMoney, FieldTypeSelect, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

func (fd FieldDefinition) HasOption(value string) bool {
	for _, option := range fd.Options {
		if option == value {
			return true
		}
	}
	return false
}

func NewFieldDefinitionBuilder() *fieldDefinitionBuilder {
	return &fieldDefinitionBuilder{}
}

type fieldDefinitionBuilder struct {
	actions []fieldDefinitionHandler
}

type fieldDefinitionHandler func(fd *FieldDefinition) error

func (b *fieldDefinitionBuilder) WithName(value string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(fd *FieldDefinition) error {
		if value == "" {
			return ErrFieldNameRequired
		}
		fd.Name = shareddomain.Name(value)
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithType(value FieldType) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(fd *FieldDefinition) error {
		if !value.IsValid() {
			return ErrInvalidFieldType
		}
		fd.Type = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithIsRequired(value bool) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(fd *FieldDefinition) error {
		fd.IsRequired = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithOptions(value []string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(fd *FieldDefinition) error {
		fd.Options = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithSortOrder(value int) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(fd *FieldDefinition) error {
		fd.SortOrder = value
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) Build() (FieldDefinition, error) {
	now := utils.Now()
	result := FieldDefinition{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Type:      FieldTypeText,
		Options:   make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return FieldDefinition{}, err
		}
	}

	if result.Type == FieldTypeSelect && len(result.Options) == 0 {
		return FieldDefinition{}, ErrSelectOptionsRequired
	}
	if result.Type != FieldTypeSelect {
		result.Options = make([]string, 0)
	}

	return result, nil
}
