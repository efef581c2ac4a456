package internal

import (
	"inventar-server/internal/infra/utils"
	"inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

// Request models
type FieldCreateRequest struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options,omitempty"`
	SortOrder  int      `json:"sortOrder"`
}

type FieldUpdateRequest struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options,omitempty"`
	SortOrder  int      `json:"sortOrder"`
}

// Response models
type FieldResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	IsRequired bool       `json:"isRequired"`
	Options    []string   `json:"options"`
	SortOrder  int        `json:"sortOrder"`
	CreatedAt  utils.Time `json:"createdAt"`
	UpdatedAt  utils.Time `json:"updatedAt"`
}

func ToFieldResponse(definition domain.FieldDefinition) FieldResponse {
	options := definition.Options
	if options == nil {
		options = []string{}
	}
	return FieldResponse{
		ID:         definition.ID.String(),
		Name:       definition.Name.String(),
		Type:       string(definition.Type),
		IsRequired: definition.IsRequired,
		Options:    options,
		SortOrder:  definition.SortOrder,
		CreatedAt:  definition.CreatedAt,
		UpdatedAt:  definition.UpdatedAt,
	}
}

func ToFieldResponses(definitions []domain.FieldDefinition) []FieldResponse {
	responses := make([]FieldResponse, len(definitions))
	for i, definition := range definitions {
		responses[i] = ToFieldResponse(definition)
	}
	return responses
}

// FromFieldUpdateRequest merges the mutable attributes onto an existing
// definition, keeping id and creation time.
func FromFieldUpdateRequest(existing domain.FieldDefinition, body FieldUpdateRequest) domain.FieldDefinition {
	existing.Name = shareddomain.Name(body.Name)
	existing.Type = domain.FieldType(body.Type)
	existing.IsRequired = body.IsRequired
	existing.Options = body.Options
	existing.SortOrder = body.SortOrder
	if existing.Type != domain.FieldTypeSelect {
		existing.Options = []string{}
	}
	existing.UpdatedAt = utils.Now()
	return existing
}
