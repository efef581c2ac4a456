package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventar-server/internal/infra/sql"
	"inventar-server/internal/inventory/domain"
	"inventar-server/internal/inventory/persistence/internal"
	"inventar-server/internal/inventory/usecases"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

func NewRecordRepository(orm sql.ORM) (*SimpleRecordRepository, error) {
	err := orm.AutoMigrate(&internal.Record{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRecordRepository{orm: orm}, nil
}

var _ usecases.RecordRepository = (*SimpleRecordRepository)(nil)

type SimpleRecordRepository struct {
	orm sql.ORM
}

func (r *SimpleRecordRepository) Create(ctx context.Context, record domain.Record) error {
	entity := internal.FromRecord(record)
	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}
	return nil
}

func (r *SimpleRecordRepository) GetByID(ctx context.Context, id shareddomain.ID) (domain.Record, error) {
	var entity internal.Record
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Record{}, usecases.ErrRecordNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

// FindPage returns one page newest-first plus the unpaged total for the
// same scope.
func (r *SimpleRecordRepository) FindPage(
	ctx context.Context,
	ownerID *shareddomain.ID,
	pagination usecases.Pagination,
) ([]domain.Record, int, error) {
	var total int64
	counter := r.orm.WithContext(ctx).Model(&internal.Record{})
	counter = scopeToOwner(counter, ownerID)
	if err := counter.Count(&total).Error(); err != nil {
		return nil, 0, fmt.Errorf("database count: %w", err)
	}

	var entities []internal.Record
	query := r.orm.
		WithContext(ctx).
		Order("created_at desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset)
	query = scopeToOwner(query, ownerID)
	if err := query.Find(&entities).Error(); err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	return toDomainRecords(entities), int(total), nil
}

func (r *SimpleRecordRepository) FindAll(ctx context.Context, ownerID *shareddomain.ID) ([]domain.Record, error) {
	var entities []internal.Record
	query := r.orm.
		WithContext(ctx).
		Order("created_at desc")
	query = scopeToOwner(query, ownerID)
	if err := query.Find(&entities).Error(); err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	return toDomainRecords(entities), nil
}

func (r *SimpleRecordRepository) Update(ctx context.Context, record domain.Record) error {
	entity := internal.FromRecord(record)
	err := r.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}
	return nil
}

func (r *SimpleRecordRepository) Delete(ctx context.Context, id shareddomain.ID) error {
	err := r.orm.
		WithContext(ctx).
		Delete(&internal.Record{}, "id = ?", id.String()).
		Error()
	if err != nil {
		return fmt.Errorf("database delete: %w", err)
	}
	return nil
}

func (r *SimpleRecordRepository) Count(ctx context.Context, ownerID *shareddomain.ID) (int, error) {
	var total int64
	query := r.orm.WithContext(ctx).Model(&internal.Record{})
	query = scopeToOwner(query, ownerID)
	if err := query.Count(&total).Error(); err != nil {
		return 0, fmt.Errorf("database count: %w", err)
	}
	return int(total), nil
}

func (r *SimpleRecordRepository) CountCreatedSince(ctx context.Context, ownerID *shareddomain.ID, since time.Time) (int, error) {
	var total int64
	query := r.orm.
		WithContext(ctx).
		Model(&internal.Record{}).
		Where("created_at > ?", since)
	query = scopeToOwner(query, ownerID)
	if err := query.Count(&total).Error(); err != nil {
		return 0, fmt.Errorf("database count: %w", err)
	}
	return int(total), nil
}

func scopeToOwner(query sql.ORM, ownerID *shareddomain.ID) sql.ORM {
	if ownerID == nil {
		return query
	}
	return query.Where("owner_id = ?", ownerID.String())
}

func toDomainRecords(entities []internal.Record) []domain.Record {
	result := make([]domain.Record, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}
	return result
}
