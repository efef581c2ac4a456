package usecases

import (
	"context"
	"errors"
	"time"

	inventoryDomain "inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

var (
	ErrFieldNotFound  = errors.New("field definition not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("principal is neither owner nor admin")
)

type Pagination struct {
	Limit  int
	Offset int
}

type FieldDefinitionRepository interface {
	Create(ctx context.Context, definition inventoryDomain.FieldDefinition) error
	GetByID(ctx context.Context, id shareddomain.ID) (inventoryDomain.FieldDefinition, error)
	// FindAll returns definitions sorted by SortOrder ascending; equal
	// orders keep creation order.
	FindAll(ctx context.Context) ([]inventoryDomain.FieldDefinition, error)
	Update(ctx context.Context, definition inventoryDomain.FieldDefinition) error
	Delete(ctx context.Context, id shareddomain.ID) error
}

type RecordRepository interface {
	Create(ctx context.Context, record inventoryDomain.Record) error
	GetByID(ctx context.Context, id shareddomain.ID) (inventoryDomain.Record, error)
	// FindPage scopes to an owner when ownerID is non-nil.
	FindPage(ctx context.Context, ownerID *shareddomain.ID, pagination Pagination) ([]inventoryDomain.Record, int, error)
	FindAll(ctx context.Context, ownerID *shareddomain.ID) ([]inventoryDomain.Record, error)
	Update(ctx context.Context, record inventoryDomain.Record) error
	Delete(ctx context.Context, id shareddomain.ID) error
	Count(ctx context.Context, ownerID *shareddomain.ID) (int, error)
	CountCreatedSince(ctx context.Context, ownerID *shareddomain.ID, since time.Time) (int, error)
}
