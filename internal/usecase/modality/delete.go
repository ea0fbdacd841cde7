package modality

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
)

type DeleteModality struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteModality(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteModality {
	return &DeleteModality{
		repo:  repo,
		audit: audit,
	}
}

// Execute refuses to delete a modality any shift still points at. The check
// and the delete are not atomic: a shift created in between keeps a dangling
// modalityId.
func (uc *DeleteModality) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	modalityID string,
) error {

	using, err := uc.repo.ShiftsUsingModality(ctx, tenantID, modalityID)
	if err != nil {
		return err
	}
	if len(using) > 0 {
		return httperr.ErrBusiness(httperr.CodeReferentialConflict)
	}

	if err := uc.repo.DeleteModality(ctx, tenantID, modalityID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "modality_deleted",
		Entity:   "modality",
		EntityID: modalityID,
	})
	return nil
}
