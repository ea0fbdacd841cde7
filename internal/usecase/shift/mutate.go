package shift

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

var errRetriesExhausted = errors.New("shift kept changing while writing")

// mutate applies change to the freshest copy of a shift and writes it back
// only if nobody wrote in between, re-reading up to attempts times.
// change reports whether it modified the shift; unchanged shifts are not
// written.
func mutate(
	ctx context.Context,
	repo domain.ShiftRepository,
	tenantID string,
	shiftID string,
	attempts int,
	change func(s *models.Shift) (bool, error),
) (*models.Shift, error) {

	for i := 0; i < attempts; i++ {
		s, err := repo.GetShift(ctx, tenantID, shiftID)
		if err != nil {
			return nil, err
		}

		changed, err := change(s)
		if err != nil {
			return nil, err
		}
		if !changed {
			return s, nil
		}

		err = repo.SaveShift(ctx, tenantID, s)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
	}
	return nil, errRetriesExhausted
}
