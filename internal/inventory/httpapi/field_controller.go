package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"inventar-server/internal/infra/httpserver"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/httpapi/internal"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

const (
	listFieldsErrMessage       = "failed to list custom fields"
	createFieldErrMessage      = "failed to create custom field"
	updateFieldErrMessage      = "failed to update custom field"
	deleteFieldErrMessage      = "failed to delete custom field"
	fieldNotFoundErrMessage    = "custom field not found"
	fieldAdminOnlyErrMessage   = "custom fields are managed by administrators"
	fieldAnonymousErrMessage   = "authentication required"
	malformedFieldErrMessage   = "malformed custom field payload"
	invalidFieldTypeErrMessage = "unknown field type"
)

func NewFieldController(service usecases.FieldService) *FieldController {
	return &FieldController{
		service: service,
	}
}

var _ httpserver.Controller = &FieldController{}

type FieldController struct {
	service usecases.FieldService
}

func (c *FieldController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/custom-fields", c.listFields())
	router.Handle("POST /v1/custom-fields", c.createField())
	router.Handle("PUT /v1/custom-fields/{id}", c.updateField())
	router.Handle("DELETE /v1/custom-fields/{id}", c.deleteField())
}

func (c *FieldController) listFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		definitions, err := c.service.ListFields(r.Context())
		if err != nil {
			slog.Error("listing custom fields", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, listFieldsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToFieldResponses(definitions))
	}
}

func (c *FieldController) createField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.requireAdmin(w, r) {
			return
		}

		var body internal.FieldCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding create field request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedFieldErrMessage)
			return
		}

		definition, err := domain.NewFieldDefinitionBuilder().
			WithName(body.Name).
			WithType(domain.FieldType(body.Type)).
			WithIsRequired(body.IsRequired).
			WithOptions(body.Options).
			WithSortOrder(body.SortOrder).
			Build()
		switch {
		case errors.Is(err, domain.ErrFieldNameRequired),
			errors.Is(err, domain.ErrInvalidFieldType),
			errors.Is(err, domain.ErrSelectOptionsRequired):
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			slog.Error("building field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createFieldErrMessage)
			return
		}

		if err := c.service.CreateField(r.Context(), definition); err != nil {
			slog.Error("creating custom field", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createFieldErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToFieldResponse(definition))
	}
}

func (c *FieldController) updateField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.requireAdmin(w, r) {
			return
		}

		id := shareddomain.ID(r.PathValue("id"))

		var body internal.FieldUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding update field request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedFieldErrMessage)
			return
		}

		if !domain.FieldType(body.Type).IsValid() {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidFieldTypeErrMessage)
			return
		}

		existing, err := c.service.GetField(r.Context(), id)
		if errors.Is(err, usecases.ErrFieldNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, fieldNotFoundErrMessage)
			return
		}
		if err != nil {
			slog.Error("getting custom field", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateFieldErrMessage)
			return
		}

		definition := internal.FromFieldUpdateRequest(existing, body)
		if definition.Type == domain.FieldTypeSelect && len(definition.Options) == 0 {
			httpserver.ReplyWithError(w, http.StatusBadRequest, domain.ErrSelectOptionsRequired.Error())
			return
		}

		if err := c.service.UpdateField(r.Context(), definition); err != nil {
			slog.Error("updating custom field", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateFieldErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToFieldResponse(definition))
	}
}

func (c *FieldController) deleteField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.requireAdmin(w, r) {
			return
		}

		id := shareddomain.ID(r.PathValue("id"))

		err := c.service.DeleteField(r.Context(), id)
		if errors.Is(err, usecases.ErrFieldNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, fieldNotFoundErrMessage)
			return
		}
		if err != nil {
			slog.Error("deleting custom field", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, deleteFieldErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *FieldController) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	principal := httpserver.PrincipalFromRequest(r)
	if principal.IsAnonymous() {
		httpserver.ReplyWithError(w, http.StatusUnauthorized, fieldAnonymousErrMessage)
		return false
	}
	if !principal.IsAdmin() {
		httpserver.ReplyWithError(w, http.StatusForbidden, fieldAdminOnlyErrMessage)
		return false
	}
	return true
}
