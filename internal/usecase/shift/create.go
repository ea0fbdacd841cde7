package shift

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type CreateShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateShift {
	return &CreateShift{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateShift) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	in domain.ShiftInput,
) (*models.Shift, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}
	if err := assertModality(ctx, uc.repo, tenantID, in.ModalityID); err != nil {
		return nil, err
	}

	s := &models.Shift{
		Date:          in.Date,
		Time:          in.Time,
		Capacity:      in.Capacity,
		ModalityID:    in.ModalityID,
		BookedClients: []string{},
	}
	if err := uc.repo.CreateShift(ctx, tenantID, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "shift_created",
		Entity:   "shift",
		EntityID: s.ID,
	})

	return s, nil
}

// assertModality maps a missing modality to a validation error on the input.
func assertModality(ctx context.Context, repo domain.ModalityRepository, tenantID, modalityID string) error {
	_, err := repo.GetModality(ctx, tenantID, modalityID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return httperr.ErrValidation("modalityId")
	}
	return err
}
