package usecases

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"inventar-server/internal/inventory/export"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

var ErrUnsupportedExportFormat = fmt.Errorf("unsupported export format")

type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

type ExportService interface {
	Export(ctx context.Context, principal shareddomain.Principal, format string, fieldIDs []string) (ExportResult, error)
}

func NewExportService(records RecordService, fields FieldService) *SimpleExportService {
	return &SimpleExportService{
		records: records,
		fields:  fields,
	}
}

var _ ExportService = (*SimpleExportService)(nil)

type SimpleExportService struct {
	records RecordService
	fields  FieldService
}

// Export renders the caller's records into a downloadable table. An empty
// fieldIDs slice exports every defined column.
func (s *SimpleExportService) Export(
	ctx context.Context,
	principal shareddomain.Principal,
	format string,
	fieldIDs []string,
) (ExportResult, error) {
	records, err := s.records.SearchRecords(ctx, principal, nil)
	if err != nil {
		return ExportResult{}, fmt.Errorf("collecting records: %w", err)
	}

	definitions, err := s.fields.ListFields(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("reading field schema: %w", err)
	}

	table := export.BuildTable(records, definitions, fieldIDs)

	var buffer bytes.Buffer
	var contentType, extension string
	switch format {
	case ExportFormatCSV:
		contentType = "text/csv; charset=utf-8"
		extension = "csv"
		err = export.WriteCSV(&buffer, table)
	case ExportFormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		extension = "xlsx"
		err = export.WriteXLSX(&buffer, table)
	default:
		return ExportResult{}, fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, format)
	}
	if err != nil {
		slog.Error("rendering export", slog.String("format", format), slog.String("error", err.Error()))
		return ExportResult{}, fmt.Errorf("rendering export: %w", err)
	}

	return ExportResult{
		Data:        buffer.Bytes(),
		ContentType: contentType,
		Filename:    fmt.Sprintf("inventory_%s.%s", time.Now().Format("2006-01-02"), extension),
	}, nil
}
