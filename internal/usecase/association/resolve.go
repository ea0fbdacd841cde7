package association

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// Association is the gym and roster entry an end-user account belongs to.
type Association struct {
	TenantID string
	Client   models.Client
}

type Resolve struct {
	repo domain.Repository
}

func NewResolve(repo domain.Repository) *Resolve {
	return &Resolve{repo: repo}
}

// Execute finds the client linked to accountID. The link index answers in
// one read; when it has nothing usable every tenant is scanned and the
// index is repaired from the match.
func (uc *Resolve) Execute(ctx context.Context, accountID string) (*Association, error) {
	if accountID == "" {
		return nil, httperr.ErrBusiness(httperr.CodeNotAssociated)
	}

	found, err := uc.fromIndex(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}

	found, err = uc.scan(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotAssociated)
	}

	uc.backfill(ctx, accountID, found)
	return found, nil
}

// fromIndex returns nil without error when the index entry is missing or
// points at a client that no longer carries the link.
func (uc *Resolve) fromIndex(ctx context.Context, accountID string) (*Association, error) {
	link, err := uc.repo.GetAccountLink(ctx, accountID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetClient(ctx, link.TenantID, link.ClientID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.AssociatedUserUID != accountID {
		return nil, nil
	}
	return &Association{TenantID: link.TenantID, Client: *c}, nil
}

// scan visits tenants oldest first; the first linked client wins.
func (uc *Resolve) scan(ctx context.Context, accountID string) (*Association, error) {
	admins, err := uc.repo.ListAdminAccounts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(admins, func(i, j int) bool {
		if !admins[i].CreatedAt.Equal(admins[j].CreatedAt) {
			return admins[i].CreatedAt.Before(admins[j].CreatedAt)
		}
		return admins[i].ID < admins[j].ID
	})

	for _, admin := range admins {
		clients, err := uc.repo.ClientsLinkedTo(ctx, admin.ID, accountID)
		if err != nil {
			return nil, err
		}
		if len(clients) > 0 {
			domain.SortClients(clients)
			return &Association{TenantID: admin.ID, Client: clients[0]}, nil
		}
	}
	return nil, nil
}

// backfill never fails the resolution; the next lookup just scans again.
func (uc *Resolve) backfill(ctx context.Context, accountID string, found *Association) {
	err := uc.repo.SetAccountLink(ctx, models.AccountLink{
		ID:       accountID,
		TenantID: found.TenantID,
		ClientID: found.Client.ID,
	})
	if err != nil {
		logs.Log.WithError(err).WithFields(logrus.Fields{
			"account": accountID,
			"tenant":  found.TenantID,
		}).Warn("account link backfill failed")
	}
}
