package domain

import (
	"inventar-server/internal/infra/utils"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

// DynamicData maps a FieldDefinition id to the stored value for one record.
// Values are string for text/select, float64 for number/money and bool for
// checkbox; the tag is derived from the paired definition at read time, never
// stored alongside the value.
type DynamicData map[string]any

// Record is a single inventory entry: fixed system fields plus the
// schemaless DynamicData blob described by the field schema registry.
type Record struct {
	ID              shareddomain.ID
	Version         shareddomain.Version
	Name            shareddomain.Name
	InventoryNumber string
	Barcode         string
	OwnerID         shareddomain.ID
	OwnerName       string
	DynamicData     DynamicData
	CreatedAt       utils.Time
	UpdatedAt       utils.Time
}

// SystemValue resolves one of the reserved system field names off the record
// itself. The second return is false for anything that must be looked up in
// DynamicData instead.
func (r Record) SystemValue(field string) (any, bool) {
	switch field {
	case SystemFieldBarcode:
		return r.Barcode, true
	case SystemFieldName:
		return string(r.Name), true
	case SystemFieldCreatedAt:
		return r.CreatedAt.Time, true
	default:
		return nil, false
	}
}

const (
	SystemFieldBarcode   = "barcode"
	SystemFieldName      = "name"
	SystemFieldCreatedAt = "createdAt"
)

func NewRecordBuilder() *recordBuilder {
	return &recordBuilder{}
}

type recordBuilder struct {
	actions []recordHandler
}

type recordHandler func(r *Record) error

func (b *recordBuilder) WithName(value string) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		if value != "" {
			r.Name = shareddomain.Name(value)
		}
		return nil
	})
	return b
}

func (b *recordBuilder) WithOwner(id shareddomain.ID, name string) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		if id == "" {
			return ErrOwnerRequired
		}
		r.OwnerID = id
		r.OwnerName = name
		return nil
	})
	return b
}

func (b *recordBuilder) WithDynamicData(value DynamicData) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		if value != nil {
			r.DynamicData = value
		}
		return nil
	})
	return b
}

// Build assembles a record with server-generated identifiers. The display
// name defaults to the Russian label plus the inventory number prefix when
// the caller supplied none.
func (b *recordBuilder) Build() (Record, error) {
	now := utils.Now()
	inventoryNumber := GenerateInventoryNumber()
	result := Record{
		ID:              shareddomain.ID(utils.GenerateUUID()),
		Version:         1,
		InventoryNumber: inventoryNumber,
		Barcode:         GenerateBarcode(),
		DynamicData:     make(DynamicData),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Record{}, err
		}
	}

	if result.Name == "" {
		result.Name = shareddomain.Name("Запись " + inventoryNumber[:8])
	}

	return result, nil
}
