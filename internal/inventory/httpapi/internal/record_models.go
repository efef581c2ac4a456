package internal

import (
	"inventar-server/internal/infra/utils"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/usecases"
)

// Request models
type RecordCreateRequest struct {
	Name        string         `json:"name"`
	DynamicData map[string]any `json:"dynamicData"`
}

type RecordUpdateRequest struct {
	Name        *string        `json:"name"`
	DynamicData map[string]any `json:"dynamicData"`
}

type RecordSearchRequest struct {
	Conditions []ConditionRequest `json:"conditions"`
}

type ConditionRequest struct {
	Field     string `json:"field"`
	Operator  string `json:"operator"`
	Value     any    `json:"value"`
	FieldType string `json:"fieldType,omitempty"`
}

type ExportRequest struct {
	Format string   `json:"format"`
	Fields []string `json:"fields"`
}

// Response models
type RecordResponse struct {
	ID              string         `json:"id"`
	Version         int            `json:"version"`
	Name            string         `json:"name"`
	InventoryNumber string         `json:"inventoryNumber"`
	Barcode         string         `json:"barcode"`
	OwnerID         string         `json:"ownerId"`
	OwnerName       string         `json:"ownerName"`
	DynamicData     map[string]any `json:"dynamicData"`
	CreatedAt       utils.Time     `json:"createdAt"`
	UpdatedAt       utils.Time     `json:"updatedAt"`
}

type StatisticsResponse struct {
	Period          string `json:"period"`
	Total           int    `json:"total"`
	CreatedInPeriod int    `json:"createdInPeriod"`
}

func ToRecordResponse(record domain.Record) RecordResponse {
	data := record.DynamicData
	if data == nil {
		data = domain.DynamicData{}
	}
	return RecordResponse{
		ID:              record.ID.String(),
		Version:         int(record.Version),
		Name:            record.Name.String(),
		InventoryNumber: record.InventoryNumber,
		Barcode:         record.Barcode,
		OwnerID:         record.OwnerID.String(),
		OwnerName:       record.OwnerName,
		DynamicData:     data,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func ToRecordResponses(records []domain.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i, record := range records {
		responses[i] = ToRecordResponse(record)
	}
	return responses
}

func ToStatisticsResponse(statistics usecases.Statistics) StatisticsResponse {
	return StatisticsResponse{
		Period:          statistics.Period,
		Total:           statistics.Total,
		CreatedInPeriod: statistics.CreatedInPeriod,
	}
}

func ToConditions(requests []ConditionRequest) []domain.Condition {
	conditions := make([]domain.Condition, len(requests))
	for i, request := range requests {
		conditions[i] = domain.Condition{
			Field:     request.Field,
			Operator:  domain.Operator(request.Operator),
			Value:     request.Value,
			FieldType: domain.FieldType(request.FieldType),
		}
	}
	return conditions
}
