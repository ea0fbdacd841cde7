package repository

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

func (r *GymStoreRepository) ListModalities(ctx context.Context, tenantID string) ([]models.Modality, error) {
	ms, err := queryAll[models.Modality](ctx, r.store, "listModalities", tenantCollection(tenantID, modalitiesCollection))
	if err != nil {
		return nil, err
	}
	domain.SortModalities(ms)
	return ms, nil
}

func (r *GymStoreRepository) GetModality(ctx context.Context, tenantID, id string) (*models.Modality, error) {
	return getInto[models.Modality](ctx, r.store, "getModality", tenantDoc(tenantID, modalitiesCollection, id))
}

func (r *GymStoreRepository) CreateModality(ctx context.Context, tenantID string, m *models.Modality) error {
	now := r.now()
	m.CreatedAt, m.UpdatedAt = now, now

	id, err := r.create(ctx, "createModality", tenantCollection(tenantID, modalitiesCollection), m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *GymStoreRepository) UpdateModality(ctx context.Context, tenantID string, m *models.Modality) error {
	m.UpdatedAt = r.now()
	data, err := store.Encode(m)
	if err != nil {
		return fail("updateModality", err)
	}
	return fail("updateModality", r.store.Update(ctx, tenantDoc(tenantID, modalitiesCollection, m.ID), data))
}

func (r *GymStoreRepository) DeleteModality(ctx context.Context, tenantID, id string) error {
	return fail("deleteModality", r.store.Delete(ctx, tenantDoc(tenantID, modalitiesCollection, id)))
}
