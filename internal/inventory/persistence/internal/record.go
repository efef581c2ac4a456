package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"inventar-server/internal/infra/utils"
	"inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

type Record struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	Version         int         `json:"version"`
	Name            string      `json:"name" gorm:"not null"`
	InventoryNumber string      `json:"inventory_number" gorm:"uniqueIndex;not null"`
	Barcode         string      `json:"barcode" gorm:"uniqueIndex;not null"`
	OwnerID         string      `json:"owner_id" gorm:"index;not null"`
	OwnerName       string      `json:"owner_name"`
	DynamicData     DynamicData `json:"dynamic_data" gorm:"type:text"`
	CreatedAt       utils.Time  `json:"created_at" gorm:"index"`
	UpdatedAt       utils.Time  `json:"updated_at"`
}

func (Record) TableName() string {
	return "records"
}

// DynamicData stores the schemaless field values as a JSON object column.
type DynamicData map[string]any

func (d DynamicData) Value() (driver.Value, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *DynamicData) Scan(value any) error {
	if value == nil {
		*d = DynamicData{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, d)
	case string:
		return json.Unmarshal([]byte(data), d)
	default:
		return errors.New("unsupported dynamic data column type")
	}
}

func (r Record) ToDomain() domain.Record {
	return domain.Record{
		ID:              shareddomain.ID(r.ID),
		Version:         shareddomain.Version(r.Version),
		Name:            shareddomain.Name(r.Name),
		InventoryNumber: r.InventoryNumber,
		Barcode:         r.Barcode,
		OwnerID:         shareddomain.ID(r.OwnerID),
		OwnerName:       r.OwnerName,
		DynamicData:     domain.DynamicData(r.DynamicData),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromRecord(value domain.Record) Record {
	return Record{
		ID:              value.ID.String(),
		Version:         int(value.Version),
		Name:            value.Name.String(),
		InventoryNumber: value.InventoryNumber,
		Barcode:         value.Barcode,
		OwnerID:         value.OwnerID.String(),
		OwnerName:       value.OwnerName,
		DynamicData:     DynamicData(value.DynamicData),
		CreatedAt:       value.CreatedAt,
		UpdatedAt:       value.UpdatedAt,
	}
}
