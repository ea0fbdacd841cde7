package modality

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ListModalities struct {
	repo domain.Repository
}

func NewListModalities(repo domain.Repository) *ListModalities {
	return &ListModalities{repo: repo}
}

func (uc *ListModalities) Execute(ctx context.Context, tenantID string) ([]models.Modality, error) {
	return uc.repo.ListModalities(ctx, tenantID)
}
