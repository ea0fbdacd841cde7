package selfservice

import (
	"context"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/association"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/client"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/shift"
)

// The actions below never take a client id from the caller; they act on
// the client the account resolves to.

type BookShift struct {
	repo    domain.ShiftRepository
	resolve *association.Resolve
	book    *shift.BookClient
	now     func() time.Time
}

func NewBookShift(repo domain.Repository, audit *audit.Dispatcher, attempts int) *BookShift {
	return &BookShift{
		repo:    repo,
		resolve: association.NewResolve(repo),
		book:    shift.NewBookClient(repo, audit, attempts),
		now:     timezone.Now,
	}
}

// Execute books only shifts the overview would offer: ones not yet started.
func (uc *BookShift) Execute(ctx context.Context, accountID, shiftID string) error {
	assoc, err := uc.resolve.Execute(ctx, accountID)
	if err != nil {
		return err
	}

	sh, err := uc.repo.GetShift(ctx, assoc.TenantID, shiftID)
	if err != nil {
		return err
	}
	if !domain.IsUpcoming(*sh, uc.now()) {
		return httperr.ErrBusiness(httperr.CodeShiftStarted)
	}

	_, err = uc.book.Execute(ctx, assoc.TenantID, accountID, shiftID, assoc.Client.ID)
	return err
}

type CancelShift struct {
	resolve *association.Resolve
	unbook  *shift.UnbookClient
}

func NewCancelShift(repo domain.Repository, audit *audit.Dispatcher, attempts int) *CancelShift {
	return &CancelShift{
		resolve: association.NewResolve(repo),
		unbook:  shift.NewUnbookClient(repo, audit, attempts),
	}
}

func (uc *CancelShift) Execute(ctx context.Context, accountID, shiftID string) error {
	assoc, err := uc.resolve.Execute(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = uc.unbook.Execute(ctx, assoc.TenantID, accountID, shiftID, assoc.Client.ID)
	return err
}

type ChangeModality struct {
	resolve *association.Resolve
	set     *client.SetClientModality
}

func NewChangeModality(repo domain.Repository, audit *audit.Dispatcher) *ChangeModality {
	return &ChangeModality{
		resolve: association.NewResolve(repo),
		set:     client.NewSetClientModality(repo, audit),
	}
}

func (uc *ChangeModality) Execute(ctx context.Context, accountID, modalityID string) error {
	assoc, err := uc.resolve.Execute(ctx, accountID)
	if err != nil {
		return err
	}
	return uc.set.Execute(ctx, assoc.TenantID, accountID, assoc.Client.ID, modalityID)
}
