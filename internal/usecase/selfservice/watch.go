package selfservice

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/association"
)

type WatchOverview struct {
	repo    domain.Repository
	resolve *association.Resolve
	now     func() time.Time
}

func NewWatchOverview(repo domain.Repository) *WatchOverview {
	return &WatchOverview{
		repo:    repo,
		resolve: association.NewResolve(repo),
		now:     timezone.Now,
	}
}

// Execute emits a fresh overview once both the shift and the payment
// subscriptions delivered, then again after every change to either.
func (uc *WatchOverview) Execute(ctx context.Context, accountID string) (<-chan *Overview, error) {
	assoc, err := uc.resolve.Execute(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	shiftsCh, err := uc.repo.WatchShifts(ctx, assoc.TenantID)
	if err != nil {
		cancel()
		return nil, err
	}
	paymentsCh, err := uc.repo.WatchClientPayments(ctx, assoc.TenantID, assoc.Client.ID)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan *Overview, 1)
	go func() {
		defer cancel()
		defer close(out)

		var (
			shifts   []models.Shift
			payments []models.Payment
			gotS     bool
			gotP     bool
		)
		for {
			select {
			case s, ok := <-shiftsCh:
				if !ok {
					return
				}
				shifts, gotS = s, true
			case p, ok := <-paymentsCh:
				if !ok {
					return
				}
				payments, gotP = p, true
			case <-ctx.Done():
				return
			}
			if !gotS || !gotP {
				continue
			}

			ov, err := compose(ctx, uc.repo, assoc, shifts, payments, uc.now())
			if err != nil {
				logs.Log.WithError(err).WithField("account", accountID).Warn("overview refresh failed")
				continue
			}
			select {
			case out <- ov:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
