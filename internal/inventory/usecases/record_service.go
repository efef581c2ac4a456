package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inventar-server/internal/infra/utils"
	inventoryDomain "inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

type RecordCreateInput struct {
	Name        string
	DynamicData inventoryDomain.DynamicData
}

type RecordUpdateInput struct {
	Name        *string
	DynamicData inventoryDomain.DynamicData
}

type Statistics struct {
	Period          string
	Total           int
	CreatedInPeriod int
}

type RecordService interface {
	CreateRecord(ctx context.Context, principal shareddomain.Principal, input RecordCreateInput) (inventoryDomain.Record, error)
	GetRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) (inventoryDomain.Record, error)
	ListRecords(ctx context.Context, principal shareddomain.Principal, pagination Pagination) ([]inventoryDomain.Record, int, error)
	SearchRecords(ctx context.Context, principal shareddomain.Principal, conditions []inventoryDomain.Condition) ([]inventoryDomain.Record, error)
	UpdateRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID, input RecordUpdateInput) (inventoryDomain.Record, error)
	DeleteRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) error
	GetStatistics(ctx context.Context, principal shareddomain.Principal, period string) (Statistics, error)
}

func NewRecordService(repository RecordRepository, fields FieldService) *SimpleRecordService {
	return &SimpleRecordService{
		repository: repository,
		fields:     fields,
	}
}

var _ RecordService = (*SimpleRecordService)(nil)

type SimpleRecordService struct {
	repository RecordRepository
	fields     FieldService
}

// CreateRecord validates the dynamic data against the current schema
// snapshot, then persists a record with server-generated identifiers.
// The validate-then-write pair is not transactional with registry changes;
// a concurrent schema edit can slip between the two reads.
func (s *SimpleRecordService) CreateRecord(
	ctx context.Context,
	principal shareddomain.Principal,
	input RecordCreateInput,
) (inventoryDomain.Record, error) {
	definitions, err := s.fields.ListFields(ctx)
	if err != nil {
		return inventoryDomain.Record{}, fmt.Errorf("reading field schema: %w", err)
	}

	if messages := inventoryDomain.Validate(input.DynamicData, definitions); len(messages) > 0 {
		return inventoryDomain.Record{}, &inventoryDomain.ValidationError{Messages: messages}
	}

	record, err := inventoryDomain.NewRecordBuilder().
		WithName(input.Name).
		WithOwner(principal.ID, principal.Name).
		WithDynamicData(input.DynamicData).
		Build()
	if err != nil {
		return inventoryDomain.Record{}, fmt.Errorf("building record: %w", err)
	}

	err = s.repository.Create(ctx, record)
	if err != nil {
		slog.Error("creating record", slog.String("error", err.Error()))
		return inventoryDomain.Record{}, fmt.Errorf("creating record: %w", err)
	}

	slog.Info("record created",
		slog.String("id", record.ID.String()),
		slog.String("inventory_number", record.InventoryNumber),
		slog.String("owner_id", record.OwnerID.String()))

	return record, nil
}

func (s *SimpleRecordService) GetRecord(
	ctx context.Context,
	principal shareddomain.Principal,
	id shareddomain.ID,
) (inventoryDomain.Record, error) {
	record, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return inventoryDomain.Record{}, ErrRecordNotFound
		}
		slog.Error("getting record", slog.String("error", err.Error()))
		return inventoryDomain.Record{}, fmt.Errorf("getting record: %w", err)
	}

	if !principal.CanAccess(record.OwnerID) {
		return inventoryDomain.Record{}, ErrForbidden
	}

	return record, nil
}

func (s *SimpleRecordService) ListRecords(
	ctx context.Context,
	principal shareddomain.Principal,
	pagination Pagination,
) ([]inventoryDomain.Record, int, error) {
	records, total, err := s.repository.FindPage(ctx, ownerScope(principal), pagination)
	if err != nil {
		slog.Error("listing records", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing records: %w", err)
	}

	return records, total, nil
}

// SearchRecords fetches the caller's scope and evaluates the conditions in
// memory with the predicate engine; relative record order is preserved.
func (s *SimpleRecordService) SearchRecords(
	ctx context.Context,
	principal shareddomain.Principal,
	conditions []inventoryDomain.Condition,
) ([]inventoryDomain.Record, error) {
	records, err := s.repository.FindAll(ctx, ownerScope(principal))
	if err != nil {
		slog.Error("searching records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching records: %w", err)
	}

	definitions, err := s.fields.ListFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading field schema: %w", err)
	}

	return inventoryDomain.ApplyAll(records, resolveConditionTypes(conditions, definitions)), nil
}

func (s *SimpleRecordService) UpdateRecord(
	ctx context.Context,
	principal shareddomain.Principal,
	id shareddomain.ID,
	input RecordUpdateInput,
) (inventoryDomain.Record, error) {
	record, err := s.GetRecord(ctx, principal, id)
	if err != nil {
		return inventoryDomain.Record{}, err
	}

	// only name and dynamicData are mutable; identifiers stay fixed
	if input.Name != nil {
		record.Name = shareddomain.Name(*input.Name)
	}
	if input.DynamicData != nil {
		record.DynamicData = input.DynamicData
	}

	definitions, err := s.fields.ListFields(ctx)
	if err != nil {
		return inventoryDomain.Record{}, fmt.Errorf("reading field schema: %w", err)
	}
	if messages := inventoryDomain.Validate(record.DynamicData, definitions); len(messages) > 0 {
		return inventoryDomain.Record{}, &inventoryDomain.ValidationError{Messages: messages}
	}

	record.Version++
	record.UpdatedAt = utils.Now()

	err = s.repository.Update(ctx, record)
	if err != nil {
		slog.Error("updating record", slog.String("error", err.Error()))
		return inventoryDomain.Record{}, fmt.Errorf("updating record: %w", err)
	}

	return record, nil
}

func (s *SimpleRecordService) DeleteRecord(
	ctx context.Context,
	principal shareddomain.Principal,
	id shareddomain.ID,
) error {
	_, err := s.GetRecord(ctx, principal, id)
	if err != nil {
		return err
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting record", slog.String("error", err.Error()))
		return fmt.Errorf("deleting record: %w", err)
	}

	return nil
}

func (s *SimpleRecordService) GetStatistics(
	ctx context.Context,
	principal shareddomain.Principal,
	period string,
) (Statistics, error) {
	since, normalized := periodStart(period)
	scope := ownerScope(principal)

	total, err := s.repository.Count(ctx, scope)
	if err != nil {
		return Statistics{}, fmt.Errorf("counting records: %w", err)
	}

	created, err := s.repository.CountCreatedSince(ctx, scope, since)
	if err != nil {
		return Statistics{}, fmt.Errorf("counting recent records: %w", err)
	}

	return Statistics{Period: normalized, Total: total, CreatedInPeriod: created}, nil
}

// ownerScope returns nil for admins, who see every record.
func ownerScope(principal shareddomain.Principal) *shareddomain.ID {
	if principal.IsAdmin() {
		return nil
	}
	id := principal.ID
	return &id
}

func periodStart(period string) (time.Time, string) {
	now := time.Now()
	switch period {
	case "day":
		return now.AddDate(0, 0, -1), period
	case "week":
		return now.AddDate(0, 0, -7), period
	case "year":
		return now.AddDate(-1, 0, 0), period
	default:
		return now.AddDate(0, -1, 0), "month"
	}
}

// resolveConditionTypes fills in missing cached field types from the schema
// so clients may omit them. Unknown field ids keep their zero type and fall
// back to text semantics, which fails the condition on the missing value.
func resolveConditionTypes(
	conditions []inventoryDomain.Condition,
	definitions []inventoryDomain.FieldDefinition,
) []inventoryDomain.Condition {
	byID := make(map[string]inventoryDomain.FieldType, len(definitions))
	for _, definition := range definitions {
		byID[definition.ID.String()] = definition.Type
	}

	resolved := make([]inventoryDomain.Condition, len(conditions))
	for i, condition := range conditions {
		if condition.FieldType == "" {
			if condition.Field == inventoryDomain.SystemFieldCreatedAt {
				condition.FieldType = inventoryDomain.FieldTypeDate
			} else if fieldType, ok := byID[condition.Field]; ok {
				condition.FieldType = fieldType
			} else {
				condition.FieldType = inventoryDomain.FieldTypeText
			}
		}
		resolved[i] = condition
	}
	return resolved
}
