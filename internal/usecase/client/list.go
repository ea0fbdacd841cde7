package client

import (
	"context"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute returns the roster sorted by name, filtered by query when set.
func (uc *ListClients) Execute(ctx context.Context, tenantID, query string) ([]models.Client, error) {
	clients, err := uc.repo.ListClients(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return clients, nil
	}

	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if domain.MatchesSearch(c, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

type GetClient struct {
	repo domain.Repository
}

func NewGetClient(repo domain.Repository) *GetClient {
	return &GetClient{repo: repo}
}

func (uc *GetClient) Execute(ctx context.Context, tenantID, clientID string) (*models.Client, error) {
	return uc.repo.GetClient(ctx, tenantID, clientID)
}
