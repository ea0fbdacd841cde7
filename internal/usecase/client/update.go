package client

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces the contact fields and the account link. The current
// modality is left alone.
func (uc *UpdateClient) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	clientID string,
	in domain.ClientInput,
) (*models.Client, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}

	c := &models.Client{
		ID:                clientID,
		Name:              in.Name,
		Phone:             in.Phone,
		Email:             in.Email,
		AssociatedUserUID: in.AssociatedUserUID,
	}
	if err := uc.repo.UpdateClient(ctx, tenantID, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: c.ID,
	})

	return c, nil
}

type SetClientModality struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetClientModality(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetClientModality {
	return &SetClientModality{
		repo:  repo,
		audit: audit,
	}
}

// Execute points the client at a modality of the same tenant. An empty
// modalityID clears it.
func (uc *SetClientModality) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	clientID string,
	modalityID string,
) error {

	if modalityID != "" {
		if _, err := uc.repo.GetModality(ctx, tenantID, modalityID); err != nil {
			if httperr.IsBusiness(err, httperr.CodeNotFound) {
				return httperr.ErrValidation("modalityId")
			}
			return err
		}
	}

	if err := uc.repo.SetClientModality(ctx, tenantID, clientID, modalityID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "client_modality_changed",
		Entity:   "client",
		EntityID: clientID,
		Metadata: map[string]string{"modalityId": modalityID},
	})
	return nil
}
