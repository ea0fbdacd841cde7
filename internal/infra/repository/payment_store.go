package repository

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

func (r *GymStoreRepository) ListPayments(ctx context.Context, tenantID string) ([]models.Payment, error) {
	ps, err := queryAll[models.Payment](ctx, r.store, "listPayments", tenantCollection(tenantID, paymentsCollection))
	if err != nil {
		return nil, err
	}
	domain.SortPayments(ps)
	return ps, nil
}

func (r *GymStoreRepository) ListClientPayments(ctx context.Context, tenantID, clientID string) ([]models.Payment, error) {
	ps, err := queryAll[models.Payment](ctx, r.store, "listClientPayments",
		tenantCollection(tenantID, paymentsCollection), store.Eq("clientId", clientID))
	if err != nil {
		return nil, err
	}
	domain.SortPayments(ps)
	return ps, nil
}

func (r *GymStoreRepository) CreatePayment(ctx context.Context, tenantID string, p *models.Payment) error {
	p.RecordedAt = r.now()

	id, err := r.create(ctx, "createPayment", tenantCollection(tenantID, paymentsCollection), p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *GymStoreRepository) DeletePayment(ctx context.Context, tenantID, id string) error {
	return fail("deletePayment", r.store.Delete(ctx, tenantDoc(tenantID, paymentsCollection, id)))
}

func (r *GymStoreRepository) WatchClientPayments(ctx context.Context, tenantID, clientID string) (<-chan []models.Payment, error) {
	return watchAll[models.Payment](ctx, r.store, "watchClientPayments",
		tenantCollection(tenantID, paymentsCollection), domain.SortPayments, store.Eq("clientId", clientID))
}
