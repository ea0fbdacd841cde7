package modality

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type UpdateModality struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateModality(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateModality {
	return &UpdateModality{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateModality) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	modalityID string,
	in domain.ModalityInput,
) (*models.Modality, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}

	m, err := uc.repo.GetModality(ctx, tenantID, modalityID)
	if err != nil {
		return nil, err
	}

	m.Name = in.Name
	m.Price = in.Price
	m.Description = in.Description

	if err := uc.repo.UpdateModality(ctx, tenantID, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "modality_updated",
		Entity:   "modality",
		EntityID: m.ID,
	})

	return m, nil
}
