package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inventar-server/internal/infra/httpserver"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/httpapi"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

var _ = Describe("RecordController", func() {
	var (
		recordService *stubRecordService
		exportService *stubExportService
		router        *http.ServeMux
		recorder      *httptest.ResponseRecorder
		owner         shareddomain.Principal
	)

	buildRecord := func(name string) domain.Record {
		record, err := domain.NewRecordBuilder().
			WithName(name).
			WithOwner(owner.ID, owner.Name).
			Build()
		Expect(err).ToNot(HaveOccurred())
		return record
	}

	BeforeEach(func() {
		recordService = &stubRecordService{}
		exportService = &stubExportService{}
		router = http.NewServeMux()
		httpapi.NewRecordController(recordService, exportService).AddRoutes(router)
		recorder = httptest.NewRecorder()
		owner = shareddomain.Principal{ID: "user-1", Name: "Alice", Role: shareddomain.RoleUser}
	})

	Context("listing records", func() {
		It("rejects anonymous callers", func() {
			request := httptest.NewRequest(http.MethodGet, "/v1/records", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns a paginated envelope", func() {
			recordService.listRecordsFn = func(_ context.Context, principal shareddomain.Principal, pagination usecases.Pagination) ([]domain.Record, int, error) {
				Expect(principal.ID).To(Equal(owner.ID))
				Expect(pagination.Limit).To(Equal(5))
				Expect(pagination.Offset).To(Equal(5))
				return []domain.Record{buildRecord("Laptop")}, 11, nil
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/records?page=2&limit=5", nil)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["data"]).To(HaveLen(1))
			pagination := body["pagination"].(map[string]any)
			Expect(pagination["total"]).To(BeEquivalentTo(11))
			Expect(pagination["offset"]).To(BeEquivalentTo(5))
		})
	})

	Context("creating records", func() {
		It("returns the created record", func() {
			created := buildRecord("Laptop")
			recordService.createRecordFn = func(_ context.Context, _ shareddomain.Principal, input usecases.RecordCreateInput) (domain.Record, error) {
				Expect(input.Name).To(Equal("Laptop"))
				Expect(input.DynamicData).To(HaveKeyWithValue("field-1", "SN-1"))
				return created, nil
			}

			payload := bytes.NewBufferString(`{"name":"Laptop","dynamicData":{"field-1":"SN-1"}}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/records", payload)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			var body map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["id"]).To(Equal(created.ID.String()))
			Expect(body["inventoryNumber"]).To(Equal(created.InventoryNumber))
			Expect(body["barcode"]).To(Equal(created.Barcode))
		})

		It("returns the whole validation batch as 422", func() {
			recordService.createRecordFn = func(context.Context, shareddomain.Principal, usecases.RecordCreateInput) (domain.Record, error) {
				return domain.Record{}, &domain.ValidationError{Messages: []string{
					`Field "Serial" is required`,
					`Field "Price" is required`,
				}}
			}

			request := httptest.NewRequest(http.MethodPost, "/v1/records", bytes.NewBufferString(`{}`))
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			var body httpserver.ErrorResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Messages).To(Equal([]string{
				`Field "Serial" is required`,
				`Field "Price" is required`,
			}))
		})

		It("rejects malformed payloads", func() {
			request := httptest.NewRequest(http.MethodPost, "/v1/records", bytes.NewBufferString(`{`))
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("fetching a record", func() {
		It("maps the forbidden sentinel to 403", func() {
			recordService.getRecordFn = func(context.Context, shareddomain.Principal, shareddomain.ID) (domain.Record, error) {
				return domain.Record{}, usecases.ErrForbidden
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/records/some-id", nil)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})

		It("maps the not-found sentinel to 404", func() {
			recordService.getRecordFn = func(context.Context, shareddomain.Principal, shareddomain.ID) (domain.Record, error) {
				return domain.Record{}, usecases.ErrRecordNotFound
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/records/some-id", nil)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("searching records", func() {
		It("passes decoded conditions through", func() {
			recordService.searchRecordsFn = func(_ context.Context, _ shareddomain.Principal, conditions []domain.Condition) ([]domain.Record, error) {
				Expect(conditions).To(HaveLen(1))
				Expect(conditions[0].Field).To(Equal("field-1"))
				Expect(conditions[0].Operator).To(Equal(domain.OperatorContains))
				Expect(conditions[0].Value).To(Equal("chair"))
				return []domain.Record{buildRecord("Office Chair")}, nil
			}

			payload := bytes.NewBufferString(`{"conditions":[{"field":"field-1","operator":"contains","value":"chair"}]}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/records/search", payload)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body []map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveLen(1))
			Expect(body[0]["name"]).To(Equal("Office Chair"))
		})
	})

	Context("statistics", func() {
		It("returns the computed counters", func() {
			recordService.getStatisticsFn = func(_ context.Context, _ shareddomain.Principal, period string) (usecases.Statistics, error) {
				Expect(period).To(Equal("week"))
				return usecases.Statistics{Period: "week", Total: 10, CreatedInPeriod: 3}, nil
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/records/statistics?period=week", nil)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["total"]).To(BeEquivalentTo(10))
			Expect(body["createdInPeriod"]).To(BeEquivalentTo(3))
		})
	})

	Context("exporting records", func() {
		It("streams the file with attachment headers", func() {
			exportService.exportFn = func(_ context.Context, _ shareddomain.Principal, format string, fieldIDs []string) (usecases.ExportResult, error) {
				Expect(format).To(Equal("csv"))
				Expect(fieldIDs).To(Equal([]string{"field-1"}))
				return usecases.ExportResult{
					Data:        []byte("csv-bytes"),
					ContentType: "text/csv; charset=utf-8",
					Filename:    "inventory_2026-08-29.csv",
				}, nil
			}

			payload := bytes.NewBufferString(`{"format":"csv","fields":["field-1"]}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/records/export", payload)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/csv; charset=utf-8"))
			Expect(recorder.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="inventory_2026-08-29.csv"`))
			Expect(recorder.Body.String()).To(Equal("csv-bytes"))
		})

		It("rejects unknown formats", func() {
			exportService.exportFn = func(context.Context, shareddomain.Principal, string, []string) (usecases.ExportResult, error) {
				return usecases.ExportResult{}, usecases.ErrUnsupportedExportFormat
			}

			payload := bytes.NewBufferString(`{"format":"pdf"}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/records/export", payload)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("deleting a record", func() {
		It("returns no content on success", func() {
			recordService.deleteRecordFn = func(_ context.Context, principal shareddomain.Principal, id shareddomain.ID) error {
				Expect(principal.ID).To(Equal(owner.ID))
				Expect(id.String()).To(Equal("some-id"))
				return nil
			}

			request := httptest.NewRequest(http.MethodDelete, "/v1/records/some-id", nil)
			request = httpserver.RequestWithPrincipal(request, owner)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})
	})
})
