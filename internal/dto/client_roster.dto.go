package dto

import (
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ClientRosterDTO struct {
	models.Client
	Status domain.Status `json:"status"`
}

func NewClientRoster(clients []models.Client, statuses map[string]domain.Status) []ClientRosterDTO {
	out := make([]ClientRosterDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientRosterDTO{Client: c, Status: statuses[c.ID]})
	}
	return out
}
