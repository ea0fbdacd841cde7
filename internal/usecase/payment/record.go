package payment

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type RecordPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRecordPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RecordPayment {
	return &RecordPayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute records a payment for an existing client. Several payments for the
// same period are allowed.
func (uc *RecordPayment) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	in domain.PaymentInput,
) (*models.Payment, error) {

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetClient(ctx, tenantID, in.ClientID); err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, httperr.ErrValidation("clientId")
		}
		return nil, err
	}

	p := &models.Payment{
		ClientID:     in.ClientID,
		Amount:       in.Amount,
		PaymentMonth: in.Month,
		PaymentYear:  in.Year,
	}
	if err := uc.repo.CreatePayment(ctx, tenantID, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "payment_recorded",
		Entity:   "payment",
		EntityID: p.ID,
		Metadata: map[string]any{
			"clientId": p.ClientID,
			"amount":   p.Amount.String(),
			"month":    p.PaymentMonth,
			"year":     p.PaymentYear,
		},
	})

	return p, nil
}
