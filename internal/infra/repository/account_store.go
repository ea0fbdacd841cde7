package repository

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

// registerAttempts bounds retries when two first sign-ins race on a backend
// that reports the loser as a conflict.
const registerAttempts = 3

func (r *GymStoreRepository) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return getInto[models.Account](ctx, r.store, "getAccount", accountPath(accountID))
}

func (r *GymStoreRepository) RegisterAccount(
	ctx context.Context,
	accountID string,
	email string,
	roleFor func(first bool) models.Role,
) (*models.Account, error) {

	var (
		account *models.Account
		err     error
	)
	for attempt := 0; attempt < registerAttempts; attempt++ {
		account, err = r.registerOnce(ctx, accountID, email, roleFor)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, fail("registerAccount", err)
	}
	return account, nil
}

func (r *GymStoreRepository) registerOnce(
	ctx context.Context,
	accountID string,
	email string,
	roleFor func(first bool) models.Role,
) (*models.Account, error) {

	var account models.Account

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		doc, err := tx.Get(accountPath(accountID))
		if err == nil {
			return store.Decode(*doc, &account)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		_, err = tx.Get(registryMetaPath)
		first := errors.Is(err, store.ErrNotFound)
		if err != nil && !first {
			return err
		}

		brandPath := tenantDoc(accountID, settingsCollection, brandDocID)
		_, err = tx.Get(brandPath)
		hasBrand := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		now := r.now()
		account = models.Account{
			ID:        accountID,
			Email:     email,
			Role:      roleFor(first),
			CreatedAt: now,
		}

		data, err := store.Encode(account)
		if err != nil {
			return err
		}
		if err := tx.Set(accountPath(accountID), data); err != nil {
			return err
		}

		if first {
			meta, err := store.Encode(models.RegistryMeta{FirstAccountID: accountID, CreatedAt: now})
			if err != nil {
				return err
			}
			if err := tx.Set(registryMetaPath, meta); err != nil {
				return err
			}
		}

		if account.IsAdmin() && !hasBrand {
			brand, err := store.Encode(models.BrandSettings{UpdatedAt: now})
			if err != nil {
				return err
			}
			return tx.Set(brandPath, brand)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GymStoreRepository) ListAdminAccounts(ctx context.Context) ([]models.Account, error) {
	return queryAll[models.Account](ctx, r.store, "listAdminAccounts", accountsCollection,
		store.Eq("role", string(models.RoleAdmin)))
}

// --------------------------------------------------
// Brand
// --------------------------------------------------

// GetBrand returns empty settings when none were saved yet.
func (r *GymStoreRepository) GetBrand(ctx context.Context, tenantID string) (*models.BrandSettings, error) {
	doc, err := r.store.Get(ctx, tenantDoc(tenantID, settingsCollection, brandDocID))
	if errors.Is(err, store.ErrNotFound) {
		return &models.BrandSettings{}, nil
	}
	if err != nil {
		return nil, fail("getBrand", err)
	}

	var brand models.BrandSettings
	if err := store.Decode(*doc, &brand); err != nil {
		return nil, fail("getBrand", err)
	}
	return &brand, nil
}

func (r *GymStoreRepository) SetBrand(ctx context.Context, tenantID string, brand models.BrandSettings) error {
	brand.UpdatedAt = r.now()
	data, err := store.Encode(brand)
	if err != nil {
		return fail("setBrand", err)
	}
	return fail("setBrand", r.store.Set(ctx, tenantDoc(tenantID, settingsCollection, brandDocID), data))
}

// --------------------------------------------------
// Account links
// --------------------------------------------------

func (r *GymStoreRepository) GetAccountLink(ctx context.Context, accountID string) (*models.AccountLink, error) {
	return getInto[models.AccountLink](ctx, r.store, "getAccountLink", linkPath(accountID))
}

func (r *GymStoreRepository) SetAccountLink(ctx context.Context, link models.AccountLink) error {
	link.UpdatedAt = r.now()
	data, err := store.Encode(link)
	if err != nil {
		return fail("setAccountLink", err)
	}
	return fail("setAccountLink", r.store.Set(ctx, linkPath(link.ID), data))
}
