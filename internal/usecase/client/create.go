package client

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	in domain.ClientInput,
) (*models.Client, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}

	c := &models.Client{
		Name:              in.Name,
		Phone:             in.Phone,
		Email:             in.Email,
		AssociatedUserUID: in.AssociatedUserUID,
	}
	if err := uc.repo.CreateClient(ctx, tenantID, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: c.ID,
	})

	return c, nil
}
