package shift

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ListShifts struct {
	repo domain.Repository
}

func NewListShifts(repo domain.Repository) *ListShifts {
	return &ListShifts{repo: repo}
}

// Execute returns every shift of the tenant ordered by date and time.
func (uc *ListShifts) Execute(ctx context.Context, tenantID string) ([]models.Shift, error) {
	return uc.repo.ListShifts(ctx, tenantID)
}

type WatchShifts struct {
	repo domain.Repository
}

func NewWatchShifts(repo domain.Repository) *WatchShifts {
	return &WatchShifts{repo: repo}
}

// Execute streams the ordered shift list on every change until ctx ends.
func (uc *WatchShifts) Execute(ctx context.Context, tenantID string) (<-chan []models.Shift, error) {
	return uc.repo.WatchShifts(ctx, tenantID)
}
