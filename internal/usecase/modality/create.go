package modality

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type CreateModality struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateModality(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateModality {
	return &CreateModality{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateModality) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	in domain.ModalityInput,
) (*models.Modality, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}

	m := &models.Modality{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	if err := uc.repo.CreateModality(ctx, tenantID, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "modality_created",
		Entity:   "modality",
		EntityID: m.ID,
	})

	return m, nil
}
