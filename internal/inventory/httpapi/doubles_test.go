package httpapi_test

import (
	"context"

	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

type stubFieldService struct {
	listFieldsFn  func(ctx context.Context) ([]domain.FieldDefinition, error)
	getFieldFn    func(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error)
	createFieldFn func(ctx context.Context, definition domain.FieldDefinition) error
	updateFieldFn func(ctx context.Context, definition domain.FieldDefinition) error
	deleteFieldFn func(ctx context.Context, id shareddomain.ID) error
}

var _ usecases.FieldService = (*stubFieldService)(nil)

func (s *stubFieldService) ListFields(ctx context.Context) ([]domain.FieldDefinition, error) {
	return s.listFieldsFn(ctx)
}

func (s *stubFieldService) GetField(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
	return s.getFieldFn(ctx, id)
}

func (s *stubFieldService) CreateField(ctx context.Context, definition domain.FieldDefinition) error {
	return s.createFieldFn(ctx, definition)
}

func (s *stubFieldService) UpdateField(ctx context.Context, definition domain.FieldDefinition) error {
	return s.updateFieldFn(ctx, definition)
}

func (s *stubFieldService) DeleteField(ctx context.Context, id shareddomain.ID) error {
	return s.deleteFieldFn(ctx, id)
}

type stubRecordService struct {
	createRecordFn  func(ctx context.Context, principal shareddomain.Principal, input usecases.RecordCreateInput) (domain.Record, error)
	getRecordFn     func(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) (domain.Record, error)
	listRecordsFn   func(ctx context.Context, principal shareddomain.Principal, pagination usecases.Pagination) ([]domain.Record, int, error)
	searchRecordsFn func(ctx context.Context, principal shareddomain.Principal, conditions []domain.Condition) ([]domain.Record, error)
	updateRecordFn  func(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID, input usecases.RecordUpdateInput) (domain.Record, error)
	deleteRecordFn  func(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) error
	getStatisticsFn func(ctx context.Context, principal shareddomain.Principal, period string) (usecases.Statistics, error)
}

var _ usecases.RecordService = (*stubRecordService)(nil)

func (s *stubRecordService) CreateRecord(ctx context.Context, principal shareddomain.Principal, input usecases.RecordCreateInput) (domain.Record, error) {
	return s.createRecordFn(ctx, principal, input)
}

func (s *stubRecordService) GetRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) (domain.Record, error) {
	return s.getRecordFn(ctx, principal, id)
}

func (s *stubRecordService) ListRecords(ctx context.Context, principal shareddomain.Principal, pagination usecases.Pagination) ([]domain.Record, int, error) {
	return s.listRecordsFn(ctx, principal, pagination)
}

func (s *stubRecordService) SearchRecords(ctx context.Context, principal shareddomain.Principal, conditions []domain.Condition) ([]domain.Record, error) {
	return s.searchRecordsFn(ctx, principal, conditions)
}

func (s *stubRecordService) UpdateRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID, input usecases.RecordUpdateInput) (domain.Record, error) {
	return s.updateRecordFn(ctx, principal, id, input)
}

func (s *stubRecordService) DeleteRecord(ctx context.Context, principal shareddomain.Principal, id shareddomain.ID) error {
	return s.deleteRecordFn(ctx, principal, id)
}

func (s *stubRecordService) GetStatistics(ctx context.Context, principal shareddomain.Principal, period string) (usecases.Statistics, error) {
	return s.getStatisticsFn(ctx, principal, period)
}

type stubExportService struct {
	exportFn func(ctx context.Context, principal shareddomain.Principal, format string, fieldIDs []string) (usecases.ExportResult, error)
}

var _ usecases.ExportService = (*stubExportService)(nil)

func (s *stubExportService) Export(ctx context.Context, principal shareddomain.Principal, format string, fieldIDs []string) (usecases.ExportResult, error) {
	return s.exportFn(ctx, principal, format, fieldIDs)
}
