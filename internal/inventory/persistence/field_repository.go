package persistence

import (
	"context"
	"errors"
	"fmt"

	"inventar-server/internal/infra/sql"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/persistence/internal"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

func NewFieldDefinitionRepository(orm sql.ORM) (*SimpleFieldDefinitionRepository, error) {
	err := orm.AutoMigrate(&internal.FieldDefinition{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldDefinitionRepository{orm: orm}, nil
}

var _ usecases.FieldDefinitionRepository = (*SimpleFieldDefinitionRepository)(nil)

type SimpleFieldDefinitionRepository struct {
	orm sql.ORM
}

func (r *SimpleFieldDefinitionRepository) Create(ctx context.Context, definition domain.FieldDefinition) error {
	entity := internal.FromFieldDefinition(definition)
	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}
	return nil
}

func (r *SimpleFieldDefinitionRepository) GetByID(ctx context.Context, id shareddomain.ID) (domain.FieldDefinition, error) {
	var entity internal.FieldDefinition
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.FieldDefinition{}, usecases.ErrFieldNotFound
	}
	if err != nil {
		return domain.FieldDefinition{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleFieldDefinitionRepository) FindAll(ctx context.Context) ([]domain.FieldDefinition, error) {
	var entities []internal.FieldDefinition
	err := r.orm.
		WithContext(ctx).
		Order("sort_order asc, created_at asc").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.FieldDefinition, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}
	return result, nil
}

func (r *SimpleFieldDefinitionRepository) Update(ctx context.Context, definition domain.FieldDefinition) error {
	entity := internal.FromFieldDefinition(definition)
	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}
	return nil
}

func (r *SimpleFieldDefinitionRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	err := r.orm.
		WithContext(ctx).
		Delete(&internal.FieldDefinition{}, "id = ?", id.String()).
		Error()
	if err != nil {
		return fmt.Errorf("database delete: %w", err)
	}
	return nil
}
