package repository

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

func (r *GymStoreRepository) ListShifts(ctx context.Context, tenantID string) ([]models.Shift, error) {
	shifts, err := queryAll[models.Shift](ctx, r.store, "listShifts", tenantCollection(tenantID, shiftsCollection))
	if err != nil {
		return nil, err
	}
	domain.SortShifts(shifts)
	return shifts, nil
}

func (r *GymStoreRepository) GetShift(ctx context.Context, tenantID, id string) (*models.Shift, error) {
	return getInto[models.Shift](ctx, r.store, "getShift", tenantDoc(tenantID, shiftsCollection, id))
}

func (r *GymStoreRepository) CreateShift(ctx context.Context, tenantID string, s *models.Shift) error {
	now := r.now()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.BookedClients == nil {
		s.BookedClients = []string{}
	}

	id, err := r.create(ctx, "createShift", tenantCollection(tenantID, shiftsCollection), s)
	if err != nil {
		return err
	}
	return r.reload(ctx, tenantID, id, s)
}

func (r *GymStoreRepository) SaveShift(ctx context.Context, tenantID string, s *models.Shift) error {
	s.UpdatedAt = r.now()
	if s.BookedClients == nil {
		s.BookedClients = []string{}
	}

	data, err := store.Encode(s)
	if err != nil {
		return fail("saveShift", err)
	}
	if err := r.store.UpdateIf(ctx, tenantDoc(tenantID, shiftsCollection, s.ID), s.Version, data); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return err
		}
		return fail("saveShift", err)
	}
	return r.reload(ctx, tenantID, s.ID, s)
}

// reload refreshes s, including its version, from the store.
func (r *GymStoreRepository) reload(ctx context.Context, tenantID, id string, s *models.Shift) error {
	fresh, err := r.GetShift(ctx, tenantID, id)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

func (r *GymStoreRepository) DeleteShift(ctx context.Context, tenantID, id string) error {
	return fail("deleteShift", r.store.Delete(ctx, tenantDoc(tenantID, shiftsCollection, id)))
}

func (r *GymStoreRepository) ShiftsUsingModality(ctx context.Context, tenantID, modalityID string) ([]models.Shift, error) {
	return queryAll[models.Shift](ctx, r.store, "shiftsUsingModality",
		tenantCollection(tenantID, shiftsCollection), store.Eq("modalityId", modalityID))
}

func (r *GymStoreRepository) ShiftsBookedBy(ctx context.Context, tenantID, clientID string) ([]models.Shift, error) {
	return queryAll[models.Shift](ctx, r.store, "shiftsBookedBy",
		tenantCollection(tenantID, shiftsCollection), store.ArrayContains("bookedClients", clientID))
}

func (r *GymStoreRepository) WatchShifts(ctx context.Context, tenantID string) (<-chan []models.Shift, error) {
	return watchAll[models.Shift](ctx, r.store, "watchShifts",
		tenantCollection(tenantID, shiftsCollection), domain.SortShifts)
}
