package shift

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type UpdateShift struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	attempts int
}

func NewUpdateShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
	attempts int,
) *UpdateShift {
	return &UpdateShift{
		repo:     repo,
		audit:    audit,
		attempts: attempts,
	}
}

// Execute edits the schedule fields; bookings are never touched.
func (uc *UpdateShift) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	shiftID string,
	in domain.ShiftInput,
) (*models.Shift, error) {

	if err := in.Normalize(); err != nil {
		return nil, err
	}
	if err := assertModality(ctx, uc.repo, tenantID, in.ModalityID); err != nil {
		return nil, err
	}

	s, err := mutate(ctx, uc.repo, tenantID, shiftID, uc.attempts, func(s *models.Shift) (bool, error) {
		return true, domain.Reschedule(s, in)
	})
	if errors.Is(err, errRetriesExhausted) {
		return nil, httperr.Unavailable("updateShift", err)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "shift_updated",
		Entity:   "shift",
		EntityID: shiftID,
	})

	return s, nil
}
