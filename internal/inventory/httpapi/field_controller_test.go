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

var _ = Describe("FieldController", func() {
	var (
		fieldService *stubFieldService
		router       *http.ServeMux
		recorder     *httptest.ResponseRecorder
		admin        shareddomain.Principal
		user         shareddomain.Principal
	)

	buildDefinition := func(name string, fieldType domain.FieldType) domain.FieldDefinition {
		builder := domain.NewFieldDefinitionBuilder().
			WithName(name).
			WithType(fieldType)
		if fieldType == domain.FieldTypeSelect {
			builder = builder.WithOptions([]string{"New", "Used"})
		}
		definition, err := builder.Build()
		Expect(err).ToNot(HaveOccurred())
		return definition
	}

	BeforeEach(func() {
		fieldService = &stubFieldService{}
		router = http.NewServeMux()
		httpapi.NewFieldController(fieldService).AddRoutes(router)
		recorder = httptest.NewRecorder()
		admin = shareddomain.Principal{ID: "admin-1", Name: "Root", Role: shareddomain.RoleAdmin}
		user = shareddomain.Principal{ID: "user-1", Name: "Alice", Role: shareddomain.RoleUser}
	})

	Context("listing fields", func() {
		It("is open to any caller", func() {
			fieldService.listFieldsFn = func(context.Context) ([]domain.FieldDefinition, error) {
				return []domain.FieldDefinition{buildDefinition("Serial", domain.FieldTypeText)}, nil
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/custom-fields", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body []map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveLen(1))
			Expect(body[0]["name"]).To(Equal("Serial"))
			Expect(body[0]["type"]).To(Equal("text"))
		})
	})

	Context("creating a field", func() {
		It("rejects anonymous callers", func() {
			request := httptest.NewRequest(http.MethodPost, "/v1/custom-fields", bytes.NewBufferString(`{}`))

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects non-admin callers", func() {
			request := httptest.NewRequest(http.MethodPost, "/v1/custom-fields", bytes.NewBufferString(`{}`))
			request = httpserver.RequestWithPrincipal(request, user)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})

		It("creates a field for administrators", func() {
			var created domain.FieldDefinition
			fieldService.createFieldFn = func(_ context.Context, definition domain.FieldDefinition) error {
				created = definition
				return nil
			}

			payload := bytes.NewBufferString(`{"name":"Condition","type":"select","isRequired":true,"options":["New","Used"],"sortOrder":3}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/custom-fields", payload)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(created.Name.String()).To(Equal("Condition"))
			Expect(created.Type).To(Equal(domain.FieldTypeSelect))
			Expect(created.IsRequired).To(BeTrue())
			Expect(created.Options).To(Equal([]string{"New", "Used"}))
			Expect(created.SortOrder).To(Equal(3))
			Expect(created.ID).ToNot(BeEmpty())
		})

		It("rejects a select field without options", func() {
			payload := bytes.NewBufferString(`{"name":"Condition","type":"select"}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/custom-fields", payload)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown field type", func() {
			payload := bytes.NewBufferString(`{"name":"Photo","type":"image"}`)
			request := httptest.NewRequest(http.MethodPost, "/v1/custom-fields", payload)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("updating a field", func() {
		It("merges mutable attributes onto the stored definition", func() {
			existing := buildDefinition("Serial", domain.FieldTypeText)
			fieldService.getFieldFn = func(_ context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
				Expect(id).To(Equal(existing.ID))
				return existing, nil
			}
			var updated domain.FieldDefinition
			fieldService.updateFieldFn = func(_ context.Context, definition domain.FieldDefinition) error {
				updated = definition
				return nil
			}

			payload := bytes.NewBufferString(`{"name":"Serial Number","type":"text","isRequired":true,"sortOrder":7}`)
			request := httptest.NewRequest(http.MethodPut, "/v1/custom-fields/"+existing.ID.String(), payload)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(updated.ID).To(Equal(existing.ID))
			Expect(updated.Name.String()).To(Equal("Serial Number"))
			Expect(updated.IsRequired).To(BeTrue())
			Expect(updated.SortOrder).To(Equal(7))
			Expect(updated.CreatedAt).To(Equal(existing.CreatedAt))
		})

		It("returns 404 for an unknown id", func() {
			fieldService.getFieldFn = func(context.Context, shareddomain.ID) (domain.FieldDefinition, error) {
				return domain.FieldDefinition{}, usecases.ErrFieldNotFound
			}

			payload := bytes.NewBufferString(`{"name":"Serial","type":"text"}`)
			request := httptest.NewRequest(http.MethodPut, "/v1/custom-fields/missing", payload)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("deleting a field", func() {
		It("returns no content on success", func() {
			fieldService.deleteFieldFn = func(_ context.Context, id shareddomain.ID) error {
				Expect(id.String()).To(Equal("field-1"))
				return nil
			}

			request := httptest.NewRequest(http.MethodDelete, "/v1/custom-fields/field-1", nil)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		It("returns 404 for an unknown id", func() {
			fieldService.deleteFieldFn = func(context.Context, shareddomain.ID) error {
				return usecases.ErrFieldNotFound
			}

			request := httptest.NewRequest(http.MethodDelete, "/v1/custom-fields/missing", nil)
			request = httpserver.RequestWithPrincipal(request, admin)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})
