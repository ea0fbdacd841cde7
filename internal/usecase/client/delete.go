package client

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/shift"
)

type DeleteClient struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	unbook *shift.UnbookClient
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	attempts int,
) *DeleteClient {
	return &DeleteClient{
		repo:   repo,
		audit:  audit,
		unbook: shift.NewUnbookClient(repo, audit, attempts),
	}
}

// Execute deletes the client and its account link, then removes its
// payments and bookings. The client is gone once the first step succeeds;
// dependents that could not be cleaned are reported in a
// *httperr.PartialCascadeError.
func (uc *DeleteClient) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	clientID string,
) error {

	if err := uc.repo.DeleteClient(ctx, tenantID, clientID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: clientID,
	})

	var (
		failed []string
		errs   []error
	)
	note := func(what string, err error) {
		failed = append(failed, what)
		errs = append(errs, err)
	}

	// payments
	payments, err := uc.repo.ListClientPayments(ctx, tenantID, clientID)
	if err != nil {
		note("payments", err)
	}
	for _, p := range payments {
		if err := uc.repo.DeletePayment(ctx, tenantID, p.ID); err != nil {
			note("payment/"+p.ID, err)
		}
	}

	// bookings
	shifts, err := uc.repo.ShiftsBookedBy(ctx, tenantID, clientID)
	if err != nil {
		note("shifts", err)
	}
	for _, s := range shifts {
		_, err := uc.unbook.Execute(ctx, tenantID, actorID, s.ID, clientID)
		if err != nil && !httperr.IsBusiness(err, httperr.CodeNotFound) {
			note("shift/"+s.ID, err)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	logs.Log.WithFields(logrus.Fields{
		"tenant": tenantID,
		"client": clientID,
		"failed": failed,
	}).Warn("client deleted with leftovers")

	return &httperr.PartialCascadeError{
		Entity:   "client",
		EntityID: clientID,
		Failed:   failed,
		Err:      errors.Join(errs...),
	}
}
