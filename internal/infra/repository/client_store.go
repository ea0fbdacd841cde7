package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

func (r *GymStoreRepository) ListClients(ctx context.Context, tenantID string) ([]models.Client, error) {
	cs, err := queryAll[models.Client](ctx, r.store, "listClients", tenantCollection(tenantID, clientsCollection))
	if err != nil {
		return nil, err
	}
	domain.SortClients(cs)
	return cs, nil
}

func (r *GymStoreRepository) GetClient(ctx context.Context, tenantID, id string) (*models.Client, error) {
	return getInto[models.Client](ctx, r.store, "getClient", tenantDoc(tenantID, clientsCollection, id))
}

func (r *GymStoreRepository) ClientsLinkedTo(ctx context.Context, tenantID, accountID string) ([]models.Client, error) {
	return queryAll[models.Client](ctx, r.store, "clientsLinkedTo",
		tenantCollection(tenantID, clientsCollection), store.Eq("associatedUserUid", accountID))
}

// --------------------------------------------------
// Writes (client + account link in one transaction)
// --------------------------------------------------

func (r *GymStoreRepository) CreateClient(ctx context.Context, tenantID string, c *models.Client) error {
	if err := r.assertLinkable(ctx, tenantID, "", c.AssociatedUserUID); err != nil {
		return err
	}

	now := r.now()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := r.claimLink(tx, tenantID, c.ID, c.AssociatedUserUID); err != nil {
			return err
		}
		return r.putClient(tx, tenantID, c)
	})
	return r.failLinking(ctx, "createClient", c.ID, c.AssociatedUserUID, err)
}

// UpdateClient keeps the stored currentModalityId and createdAt.
func (r *GymStoreRepository) UpdateClient(ctx context.Context, tenantID string, c *models.Client) error {
	if err := r.assertLinkable(ctx, tenantID, c.ID, c.AssociatedUserUID); err != nil {
		return err
	}

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		doc, err := tx.Get(tenantDoc(tenantID, clientsCollection, c.ID))
		if err != nil {
			return err
		}
		var existing models.Client
		if err := store.Decode(*doc, &existing); err != nil {
			return err
		}

		oldUID, newUID := existing.AssociatedUserUID, c.AssociatedUserUID
		release := false
		if oldUID != newUID {
			if err := r.checkLink(tx, tenantID, c.ID, newUID); err != nil {
				return err
			}
			if release, err = r.ownsLink(tx, tenantID, c.ID, oldUID); err != nil {
				return err
			}
		}

		c.CurrentModalityID = existing.CurrentModalityID
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = r.now()

		if oldUID != newUID && newUID != "" {
			if err := r.writeLink(tx, tenantID, c.ID, newUID); err != nil {
				return err
			}
		}
		if release {
			if err := tx.Delete(linkPath(oldUID)); err != nil {
				return err
			}
		}
		return r.putClient(tx, tenantID, c)
	})
	return r.failLinking(ctx, "updateClient", c.ID, c.AssociatedUserUID, err)
}

func (r *GymStoreRepository) DeleteClient(ctx context.Context, tenantID, id string) error {
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		path := tenantDoc(tenantID, clientsCollection, id)
		doc, err := tx.Get(path)
		if err != nil {
			return err
		}
		var existing models.Client
		if err := store.Decode(*doc, &existing); err != nil {
			return err
		}

		release, err := r.ownsLink(tx, tenantID, id, existing.AssociatedUserUID)
		if err != nil {
			return err
		}
		if release {
			if err := tx.Delete(linkPath(existing.AssociatedUserUID)); err != nil {
				return err
			}
		}
		return tx.Delete(path)
	})
	return fail("deleteClient", err)
}

func (r *GymStoreRepository) SetClientModality(ctx context.Context, tenantID, clientID, modalityID string) error {
	return fail("setClientModality", r.store.Update(ctx, tenantDoc(tenantID, clientsCollection, clientID), map[string]any{
		"currentModalityId": modalityID,
		"updatedAt":         r.now(),
	}))
}

// --------------------------------------------------
// Link helpers
// --------------------------------------------------

// assertLinkable rejects an account already carried by another client of
// the same tenant, including clients written before the link index existed.
func (r *GymStoreRepository) assertLinkable(ctx context.Context, tenantID, clientID, accountID string) error {
	if accountID == "" {
		return nil
	}
	linked, err := r.ClientsLinkedTo(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	for _, other := range linked {
		if other.ID != clientID {
			return httperr.ErrBusiness(httperr.CodeAccountAlreadyLinked)
		}
	}
	return nil
}

// checkLink fails when accountID is linked to a different client anywhere.
func (r *GymStoreRepository) checkLink(tx store.Tx, tenantID, clientID, accountID string) error {
	if accountID == "" {
		return nil
	}
	doc, err := tx.Get(linkPath(accountID))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var link models.AccountLink
	if err := store.Decode(*doc, &link); err != nil {
		return err
	}
	if link.TenantID != tenantID || link.ClientID != clientID {
		return httperr.ErrBusiness(httperr.CodeAccountAlreadyLinked)
	}
	return nil
}

func (r *GymStoreRepository) claimLink(tx store.Tx, tenantID, clientID, accountID string) error {
	if accountID == "" {
		return nil
	}
	if err := r.checkLink(tx, tenantID, clientID, accountID); err != nil {
		return err
	}
	return r.writeLink(tx, tenantID, clientID, accountID)
}

// ownsLink reports whether the index entry of accountID points at clientID.
func (r *GymStoreRepository) ownsLink(tx store.Tx, tenantID, clientID, accountID string) (bool, error) {
	if accountID == "" {
		return false, nil
	}
	doc, err := tx.Get(linkPath(accountID))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var link models.AccountLink
	if err := store.Decode(*doc, &link); err != nil {
		return false, err
	}
	return link.TenantID == tenantID && link.ClientID == clientID, nil
}

func (r *GymStoreRepository) writeLink(tx store.Tx, tenantID, clientID, accountID string) error {
	data, err := store.Encode(models.AccountLink{TenantID: tenantID, ClientID: clientID, UpdatedAt: r.now()})
	if err != nil {
		return err
	}
	return tx.Set(linkPath(accountID), data)
}

// failLinking explains a conflicting linking write: when another client now
// holds accountID the race was lost to it.
func (r *GymStoreRepository) failLinking(ctx context.Context, op, clientID, accountID string, err error) error {
	if accountID == "" || !errors.Is(err, store.ErrConflict) {
		return fail(op, err)
	}

	doc, getErr := r.store.Get(ctx, linkPath(accountID))
	if getErr == nil {
		var link models.AccountLink
		if store.Decode(*doc, &link) == nil && link.ClientID != clientID {
			return httperr.ErrBusiness(httperr.CodeAccountAlreadyLinked)
		}
	}
	return fail(op, err)
}

func (r *GymStoreRepository) putClient(tx store.Tx, tenantID string, c *models.Client) error {
	data, err := store.Encode(c)
	if err != nil {
		return err
	}
	return tx.Set(tenantDoc(tenantID, clientsCollection, c.ID), data)
}
