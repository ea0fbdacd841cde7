package account

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/identity"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// EnsureAccount runs on every authenticated request. The first call for an
// account creates it; later calls return it unchanged, role included.
type EnsureAccount struct {
	repo        domain.Repository
	adminEmails []string
}

func NewEnsureAccount(repo domain.Repository, adminEmails []string) *EnsureAccount {
	return &EnsureAccount{
		repo:        repo,
		adminEmails: adminEmails,
	}
}

func (uc *EnsureAccount) Execute(ctx context.Context, accountID, email string) (*models.Account, error) {
	email = identity.NormalizeEmail(email)

	return uc.repo.RegisterAccount(ctx, accountID, email, func(first bool) models.Role {
		return domain.AssignRole(first, email, uc.adminEmails)
	})
}

type GetAccount struct {
	repo domain.Repository
}

func NewGetAccount(repo domain.Repository) *GetAccount {
	return &GetAccount{repo: repo}
}

func (uc *GetAccount) Execute(ctx context.Context, accountID string) (*models.Account, error) {
	return uc.repo.GetAccount(ctx, accountID)
}
