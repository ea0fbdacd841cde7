package shift

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
)

type DeleteShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteShift {
	return &DeleteShift{
		repo:  repo,
		audit: audit,
	}
}

// Execute is unconditional; bookings live inside the shift.
func (uc *DeleteShift) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	shiftID string,
) error {

	if err := uc.repo.DeleteShift(ctx, tenantID, shiftID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "shift_deleted",
		Entity:   "shift",
		EntityID: shiftID,
	})
	return nil
}
