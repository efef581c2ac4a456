package usecases

import (
	"context"
	"sort"
	"time"

	inventoryDomain "inventar-server/internal/inventory/domain"
	shareddomain "inventar-server/internal/shared_kernel/domain"
)

type fakeFieldRepository struct {
	definitions  map[shareddomain.ID]inventoryDomain.FieldDefinition
	order        []shareddomain.ID
	findAllCalls int
	findAllErr   error
}

func newFakeFieldRepository() *fakeFieldRepository {
	return &fakeFieldRepository{definitions: make(map[shareddomain.ID]inventoryDomain.FieldDefinition)}
}

func (r *fakeFieldRepository) Create(_ context.Context, definition inventoryDomain.FieldDefinition) error {
	r.definitions[definition.ID] = definition
	r.order = append(r.order, definition.ID)
	return nil
}

func (r *fakeFieldRepository) GetByID(_ context.Context, id shareddomain.ID) (inventoryDomain.FieldDefinition, error) {
	definition, ok := r.definitions[id]
	if !ok {
		return inventoryDomain.FieldDefinition{}, ErrFieldNotFound
	}
	return definition, nil
}

func (r *fakeFieldRepository) FindAll(_ context.Context) ([]inventoryDomain.FieldDefinition, error) {
	r.findAllCalls++
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	result := make([]inventoryDomain.FieldDefinition, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.definitions[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (r *fakeFieldRepository) Update(_ context.Context, definition inventoryDomain.FieldDefinition) error {
	r.definitions[definition.ID] = definition
	return nil
}

func (r *fakeFieldRepository) Delete(_ context.Context, id shareddomain.ID) error {
	delete(r.definitions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeRecordRepository struct {
	records   map[shareddomain.ID]inventoryDomain.Record
	order     []shareddomain.ID
	createErr error
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{records: make(map[shareddomain.ID]inventoryDomain.Record)}
}

func (r *fakeRecordRepository) Create(_ context.Context, record inventoryDomain.Record) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return nil
}

func (r *fakeRecordRepository) GetByID(_ context.Context, id shareddomain.ID) (inventoryDomain.Record, error) {
	record, ok := r.records[id]
	if !ok {
		return inventoryDomain.Record{}, ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeRecordRepository) FindPage(ctx context.Context, ownerID *shareddomain.ID, pagination Pagination) ([]inventoryDomain.Record, int, error) {
	all, err := r.FindAll(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if pagination.Offset >= total {
		return nil, total, nil
	}
	end := pagination.Offset + pagination.Limit
	if end > total {
		end = total
	}
	return all[pagination.Offset:end], total, nil
}

func (r *fakeRecordRepository) FindAll(_ context.Context, ownerID *shareddomain.ID) ([]inventoryDomain.Record, error) {
	var result []inventoryDomain.Record
	for _, id := range r.order {
		record := r.records[id]
		if ownerID != nil && record.OwnerID != *ownerID {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (r *fakeRecordRepository) Update(_ context.Context, record inventoryDomain.Record) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeRecordRepository) Delete(_ context.Context, id shareddomain.ID) error {
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRecordRepository) Count(ctx context.Context, ownerID *shareddomain.ID) (int, error) {
	all, err := r.FindAll(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (r *fakeRecordRepository) CountCreatedSince(ctx context.Context, ownerID *shareddomain.ID, since time.Time) (int, error) {
	all, err := r.FindAll(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, record := range all {
		if record.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}
