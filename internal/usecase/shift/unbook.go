package shift

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type UnbookClient struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	attempts int
}

func NewUnbookClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	attempts int,
) *UnbookClient {
	return &UnbookClient{
		repo:     repo,
		audit:    audit,
		attempts: attempts,
	}
}

// Execute removes clientID from the shift. Removing a client that is not
// booked changes nothing and is not an error.
func (uc *UnbookClient) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	shiftID string,
	clientID string,
) (*models.Shift, error) {

	removed := false
	s, err := mutate(ctx, uc.repo, tenantID, shiftID, uc.attempts, func(s *models.Shift) (bool, error) {
		removed = domain.Unbook(s, clientID)
		return removed, nil
	})
	if errors.Is(err, errRetriesExhausted) {
		return nil, httperr.Unavailable("unbookClient", err)
	}
	if err != nil {
		return nil, err
	}

	if removed {
		uc.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			ActorID:  actorID,
			Action:   "client_unbooked",
			Entity:   "shift",
			EntityID: shiftID,
			Metadata: map[string]string{"clientId": clientID},
		})
	}

	return s, nil
}
