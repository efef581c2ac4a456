package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"inventar-server/internal/infra/utils"
	"inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

type FieldDefinition struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	Type       string     `json:"type" gorm:"not null"`
	IsRequired bool       `json:"is_required"`
	Options    OptionList `json:"options" gorm:"type:text"`
	SortOrder  int        `json:"sort_order"`
	CreatedAt  utils.Time `json:"created_at"`
	UpdatedAt  utils.Time `json:"updated_at"`
}

func (FieldDefinition) TableName() string {
	return "custom_fields"
}

// OptionList stores select options as a JSON array column.
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *OptionList) Scan(value any) error {
	if value == nil {
		*o = OptionList{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, o)
	case string:
		return json.Unmarshal([]byte(data), o)
	default:
		return errors.New("unsupported options column type")
	}
}

func (fd FieldDefinition) ToDomain() domain.FieldDefinition {
	return domain.FieldDefinition{
		ID:         shareddomain.ID(fd.ID),
		Name:       shareddomain.Name(fd.Name),
		Type:       domain.FieldType(fd.Type),
		IsRequired: fd.IsRequired,
		Options:    fd.Options,
		SortOrder:  fd.SortOrder,
		CreatedAt:  fd.CreatedAt,
		UpdatedAt:  fd.UpdatedAt,
	}
}

func FromFieldDefinition(value domain.FieldDefinition) FieldDefinition {
	return FieldDefinition{
		ID:         value.ID.String(),
		Name:       value.Name.String(),
		Type:       string(value.Type),
		IsRequired: value.IsRequired,
		Options:    OptionList(value.Options),
		SortOrder:  value.SortOrder,
		CreatedAt:  value.CreatedAt,
		UpdatedAt:  value.UpdatedAt,
	}
}
