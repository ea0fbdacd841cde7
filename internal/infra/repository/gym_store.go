package repository

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

const (
	accountsCollection = "accounts"
	linksCollection    = "accountLinks"
	registryMetaPath   = "registry/meta"

	modalitiesCollection = "modalities"
	shiftsCollection     = "shifts"
	clientsCollection    = "clients"
	paymentsCollection   = "payments"
	settingsCollection   = "settings"
	brandDocID           = "brand"
)

// GymStoreRepository implements the gym repositories over a document store.
// Tenant data lives under tenants/{tenantId}/{collection}.
type GymStoreRepository struct {
	store store.Store
	now   func() time.Time
}

func NewGymStoreRepository(s store.Store) *GymStoreRepository {
	return &GymStoreRepository{store: s, now: time.Now}
}

var _ domain.Repository = (*GymStoreRepository)(nil)

// --------------------------------------------------
// Paths
// --------------------------------------------------

func tenantCollection(tenantID, name string) string {
	return store.Join("tenants", tenantID, name)
}

func tenantDoc(tenantID, name, id string) string {
	return store.Join("tenants", tenantID, name, id)
}

func accountPath(accountID string) string {
	return store.Join(accountsCollection, accountID)
}

func linkPath(accountID string) string {
	return store.Join(linksCollection, accountID)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// fail converts a store error into the gym error taxonomy. Anything that is
// not a rule violation is logged and reported as unavailable, including
// version conflicts; only SaveShift hands those back raw for a retry.
func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	logs.Log.WithError(err).WithField("op", op).Error("store operation failed")
	return httperr.Unavailable(op, err)
}

func getInto[T any](ctx context.Context, s store.Store, op, path string) (*T, error) {
	doc, err := s.Get(ctx, path)
	if err != nil {
		return nil, fail(op, err)
	}
	var v T
	if err := store.Decode(*doc, &v); err != nil {
		return nil, fail(op, err)
	}
	return &v, nil
}

func queryAll[T any](ctx context.Context, s store.Store, op, collection string, filters ...store.Filter) ([]T, error) {
	docs, err := s.Query(ctx, collection, filters...)
	if err != nil {
		return nil, fail(op, err)
	}
	out, err := store.DecodeAll[T](docs)
	if err != nil {
		return nil, fail(op, err)
	}
	return out, nil
}

// watchAll decodes every snapshot of a subscription. Snapshots that fail to
// decode are logged and skipped.
func watchAll[T any](ctx context.Context, s store.Store, op, collection string, sortFn func([]T), filters ...store.Filter) (<-chan []T, error) {
	docs, err := s.Subscribe(ctx, collection, filters...)
	if err != nil {
		return nil, fail(op, err)
	}

	out := make(chan []T, 1)
	go func() {
		defer close(out)
		for snapshot := range docs {
			items, err := store.DecodeAll[T](snapshot)
			if err != nil {
				logs.Log.WithError(err).WithField("op", op).Warn("skipping undecodable snapshot")
				continue
			}
			if sortFn != nil {
				sortFn(items)
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// create stores v under collection and returns the new id.
func (r *GymStoreRepository) create(ctx context.Context, op, collection string, v any) (string, error) {
	data, err := store.Encode(v)
	if err != nil {
		return "", fail(op, err)
	}
	id, err := r.store.Create(ctx, collection, data)
	if err != nil {
		return "", fail(op, err)
	}
	return id, nil
}
