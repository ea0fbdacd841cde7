package payment

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
)

type DeletePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeletePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeletePayment {
	return &DeletePayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeletePayment) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	paymentID string,
) error {

	if err := uc.repo.DeletePayment(ctx, tenantID, paymentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "payment_deleted",
		Entity:   "payment",
		EntityID: paymentID,
	})
	return nil
}
