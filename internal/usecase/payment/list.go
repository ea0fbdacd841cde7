package payment

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

// Execute lists the tenant's payments, newest period first. A non-empty
// clientID narrows the list to that client.
func (uc *ListPayments) Execute(ctx context.Context, tenantID, clientID string) ([]models.Payment, error) {
	if clientID != "" {
		return uc.repo.ListClientPayments(ctx, tenantID, clientID)
	}
	return uc.repo.ListPayments(ctx, tenantID)
}
