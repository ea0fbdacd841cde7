package payment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// ClientStatus derives the membership status of one client from the
// payments stored right now. Nothing is cached.
type ClientStatus struct {
	repo domain.Repository
	now  func() time.Time
}

func NewClientStatus(repo domain.Repository) *ClientStatus {
	return &ClientStatus{repo: repo, now: timezone.Now}
}

func (uc *ClientStatus) Execute(ctx context.Context, tenantID, clientID string) (domain.Status, error) {
	if _, err := uc.repo.GetClient(ctx, tenantID, clientID); err != nil {
		return "", err
	}

	payments, err := uc.repo.ListClientPayments(ctx, tenantID, clientID)
	if err != nil {
		return "", err
	}
	return domain.PaymentStatus(payments, clientID, uc.now()), nil
}

type RosterStatus struct {
	repo domain.Repository
	now  func() time.Time
}

func NewRosterStatus(repo domain.Repository) *RosterStatus {
	return &RosterStatus{repo: repo, now: timezone.Now}
}

// Execute maps every client id of the tenant to its status for the current
// month.
func (uc *RosterStatus) Execute(ctx context.Context, tenantID string) (map[string]domain.Status, error) {
	clients, err := uc.repo.ListClients(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return domain.RosterStatus(clients, payments, uc.now()), nil
}
