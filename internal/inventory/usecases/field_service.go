package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inventar-server/internal/infra/cache"
	inventoryDomain "inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

const (
	fieldListCacheKey = "custom_fields:list"
	fieldListCacheTTL = 5 * time.Minute
)

// FieldService is the field schema registry: the administrator-facing CRUD
// over dynamic field definitions. Reads go through the cache; every write
// invalidates the snapshot.
type FieldService interface {
	ListFields(ctx context.Context) ([]inventoryDomain.FieldDefinition, error)
	GetField(ctx context.Context, id shareddomain.ID) (inventoryDomain.FieldDefinition, error)
	CreateField(ctx context.Context, definition inventoryDomain.FieldDefinition) error
	UpdateField(ctx context.Context, definition inventoryDomain.FieldDefinition) error
	DeleteField(ctx context.Context, id shareddomain.ID) error
}

func NewFieldService(repository FieldDefinitionRepository, schemaCache cache.Cache, opts ...FieldServiceOption) *SimpleFieldService {
	service := &SimpleFieldService{
		repository:  repository,
		schemaCache: schemaCache,
		cacheTTL:    fieldListCacheTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type FieldServiceOption func(*SimpleFieldService)

func WithSchemaCacheTTL(ttl time.Duration) FieldServiceOption {
	return func(s *SimpleFieldService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

var _ FieldService = (*SimpleFieldService)(nil)

type SimpleFieldService struct {
	repository  FieldDefinitionRepository
	schemaCache cache.Cache
	cacheTTL    time.Duration
}

func (s *SimpleFieldService) ListFields(ctx context.Context) ([]inventoryDomain.FieldDefinition, error) {
	cached, err := s.schemaCache.GetOrSet(ctx, fieldListCacheKey, s.cacheTTL, func() (any, error) {
		return s.repository.FindAll(ctx)
	})
	if err != nil {
		slog.Error("listing field definitions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing field definitions: %w", err)
	}

	definitions, err := coerceDefinitions(cached)
	if err != nil {
		// stale or foreign cache entry; fall back to the repository
		slog.Warn("discarding malformed cached field list", slog.String("error", err.Error()))
		s.schemaCache.Delete(ctx, fieldListCacheKey)
		return s.repository.FindAll(ctx)
	}

	return definitions, nil
}

func (s *SimpleFieldService) GetField(ctx context.Context, id shareddomain.ID) (inventoryDomain.FieldDefinition, error) {
	definition, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return inventoryDomain.FieldDefinition{}, ErrFieldNotFound
		}
		slog.Error("getting field definition", slog.String("error", err.Error()))
		return inventoryDomain.FieldDefinition{}, fmt.Errorf("getting field definition: %w", err)
	}

	return definition, nil
}

func (s *SimpleFieldService) CreateField(ctx context.Context, definition inventoryDomain.FieldDefinition) error {
	err := s.repository.Create(ctx, definition)
	if err != nil {
		slog.Error("creating field definition", slog.String("error", err.Error()))
		return fmt.Errorf("creating field definition: %w", err)
	}

	s.schemaCache.Delete(ctx, fieldListCacheKey)
	slog.Info("field definition created",
		slog.String("id", definition.ID.String()),
		slog.String("type", string(definition.Type)))

	return nil
}

func (s *SimpleFieldService) UpdateField(ctx context.Context, definition inventoryDomain.FieldDefinition) error {
	_, err := s.repository.GetByID(ctx, definition.ID)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return fmt.Errorf("getting field definition: %w", err)
	}

	err = s.repository.Update(ctx, definition)
	if err != nil {
		slog.Error("updating field definition", slog.String("error", err.Error()))
		return fmt.Errorf("updating field definition: %w", err)
	}

	s.schemaCache.Delete(ctx, fieldListCacheKey)
	return nil
}

// DeleteField removes the definition only. Values stored under its id in
// existing records stay behind as dangling keys; formatting and export skip
// them.
func (s *SimpleFieldService) DeleteField(ctx context.Context, id shareddomain.ID) error {
	_, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return fmt.Errorf("getting field definition: %w", err)
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		slog.Error("deleting field definition", slog.String("error", err.Error()))
		return fmt.Errorf("deleting field definition: %w", err)
	}

	s.schemaCache.Delete(ctx, fieldListCacheKey)
	return nil
}

// coerceDefinitions recovers the typed slice from either cache backend: the
// in-process cache stores it as-is, the redis cache returns JSON-decoded
// generic values.
func coerceDefinitions(value any) ([]inventoryDomain.FieldDefinition, error) {
	if definitions, ok := value.([]inventoryDomain.FieldDefinition); ok {
		return definitions, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var definitions []inventoryDomain.FieldDefinition
	if err := json.Unmarshal(raw, &definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}
