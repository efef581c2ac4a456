package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"inventar-server/internal/infra/httpserver"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/httpapi/internal"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

const (
	listRecordsErrMessage       = "failed to list records"
	createRecordErrMessage      = "failed to create record"
	getRecordErrMessage         = "failed to get record"
	updateRecordErrMessage      = "failed to update record"
	deleteRecordErrMessage      = "failed to delete record"
	searchRecordsErrMessage     = "failed to search records"
	statisticsErrMessage        = "failed to compute statistics"
	exportRecordsErrMessage     = "failed to export records"
	recordNotFoundErrMessage    = "record not found"
	recordForbiddenErrMessage   = "record belongs to another owner"
	recordAnonymousErrMessage   = "authentication required"
	malformedRecordErrMessage   = "malformed record payload"
	unsupportedFormatErrMessage = "unsupported export format"
)

func NewRecordController(service usecases.RecordService, exporter usecases.ExportService) *RecordController {
	return &RecordController{
		service:  service,
		exporter: exporter,
	}
}

var _ httpserver.Controller = &RecordController{}

type RecordController struct {
	service  usecases.RecordService
	exporter usecases.ExportService
}

func (c *RecordController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/records", c.listRecords())
	router.Handle("POST /v1/records", c.createRecord())
	router.Handle("POST /v1/records/search", c.searchRecords())
	router.Handle("GET /v1/records/statistics", c.getStatistics())
	router.Handle("POST /v1/records/export", c.exportRecords())
	router.Handle("GET /v1/records/{id}", c.getRecord())
	router.Handle("PUT /v1/records/{id}", c.updateRecord())
	router.Handle("DELETE /v1/records/{id}", c.deleteRecord())
}

func (c *RecordController) listRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.Limit, Offset: (params.Page - 1) * params.Limit}

		records, total, err := c.service.ListRecords(r.Context(), principal, pagination)
		if err != nil {
			slog.Error("listing records", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listRecordsErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.ToRecordResponses(records), total, params)
	}
}

func (c *RecordController) createRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		var body internal.RecordCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding create record request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedRecordErrMessage)
			return
		}

		record, err := c.service.CreateRecord(r.Context(), principal, usecases.RecordCreateInput{
			Name:        body.Name,
			DynamicData: body.DynamicData,
		})
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			httpserver.ReplyWithValidationErrors(w, validationErr.Messages)
			return
		}
		if err != nil {
			slog.Error("creating record", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createRecordErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) searchRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		var body internal.RecordSearchRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding search request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedRecordErrMessage)
			return
		}

		records, err := c.service.SearchRecords(r.Context(), principal, internal.ToConditions(body.Conditions))
		if err != nil {
			slog.Error("searching records", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, searchRecordsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRecordResponses(records))
	}
}

func (c *RecordController) getStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		statistics, err := c.service.GetStatistics(r.Context(), principal, r.URL.Query().Get("period"))
		if err != nil {
			slog.Error("computing statistics", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, statisticsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToStatisticsResponse(statistics))
	}
}

func (c *RecordController) exportRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		var body internal.ExportRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding export request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedRecordErrMessage)
			return
		}

		result, err := c.exporter.Export(r.Context(), principal, body.Format, body.Fields)
		if errors.Is(err, usecases.ErrUnsupportedExportFormat) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, unsupportedFormatErrMessage)
			return
		}
		if err != nil {
			slog.Error("exporting records", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, exportRecordsErrMessage)
			return
		}

		w.Header().Set("Content-Type", result.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.WriteHeader(http.StatusOK)
		w.Write(result.Data)
	}
}

func (c *RecordController) getRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		record, err := c.service.GetRecord(r.Context(), principal, shareddomain.ID(r.PathValue("id")))
		if c.replyRecordAccessError(w, err, getRecordErrMessage) {
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) updateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		var body internal.RecordUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding update record request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedRecordErrMessage)
			return
		}

		record, err := c.service.UpdateRecord(r.Context(), principal, shareddomain.ID(r.PathValue("id")), usecases.RecordUpdateInput{
			Name:        body.Name,
			DynamicData: body.DynamicData,
		})
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			httpserver.ReplyWithValidationErrors(w, validationErr.Messages)
			return
		}
		if c.replyRecordAccessError(w, err, updateRecordErrMessage) {
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) deleteRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := c.requirePrincipal(w, r)
		if !ok {
			return
		}

		err := c.service.DeleteRecord(r.Context(), principal, shareddomain.ID(r.PathValue("id")))
		if c.replyRecordAccessError(w, err, deleteRecordErrMessage) {
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *RecordController) requirePrincipal(w http.ResponseWriter, r *http.Request) (shareddomain.Principal, bool) {
	principal := httpserver.PrincipalFromRequest(r)
	if principal.IsAnonymous() {
		httpserver.ReplyWithError(w, http.StatusUnauthorized, recordAnonymousErrMessage)
		return shareddomain.Principal{}, false
	}
	return principal, true
}

// replyRecordAccessError maps the access sentinels; it reports whether a
// response was written.
func (c *RecordController) replyRecordAccessError(w http.ResponseWriter, err error, fallback string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, usecases.ErrRecordNotFound):
		httpserver.ReplyWithError(w, http.StatusNotFound, recordNotFoundErrMessage)
	case errors.Is(err, usecases.ErrForbidden):
		httpserver.ReplyWithError(w, http.StatusForbidden, recordForbiddenErrMessage)
	default:
		slog.Error("record operation failed", slog.String("error", err.Error()))
		httpserver.ReplyWithError(w, http.StatusInternalServerError, fallback)
	}
	return true
}
