package shift

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type BookClient struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	attempts int
}

func NewBookClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	attempts int,
) *BookClient {
	return &BookClient{
		repo:     repo,
		audit:    audit,
		attempts: attempts,
	}
}

// Execute books clientID into the shift. Capacity is re-checked against the
// stored shift on every attempt; losing every race reports the shift full.
func (uc *BookClient) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	shiftID string,
	clientID string,
) (*models.Shift, error) {

	if _, err := uc.repo.GetClient(ctx, tenantID, clientID); err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, httperr.ErrValidation("clientId")
		}
		return nil, err
	}

	s, err := mutate(ctx, uc.repo, tenantID, shiftID, uc.attempts, func(s *models.Shift) (bool, error) {
		return true, domain.Book(s, clientID)
	})
	if errors.Is(err, errRetriesExhausted) {
		return nil, httperr.ErrBusiness(httperr.CodeCapacityExceeded)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "client_booked",
		Entity:   "shift",
		EntityID: shiftID,
		Metadata: map[string]string{"clientId": clientID},
	})

	return s, nil
}
