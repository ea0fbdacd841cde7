package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func TestNewShiftListResolvesNames(t *testing.T) {
	shifts := []models.Shift{
		{ID: "s1", Date: "2024-03-11", Time: "07:00", Capacity: 2, ModalityID: "m1", BookedClients: []string{"c1", "gone"}},
		{ID: "s2", Date: "2024-03-11", Time: "08:00", Capacity: 1, ModalityID: "m2", BookedClients: []string{}},
	}
	modalities := []models.Modality{{ID: "m1", Name: "Yoga"}}
	clients := []models.Client{{ID: "c1", Name: "Ana"}}

	got := NewShiftList(shifts, modalities, clients)

	assert.Len(t, got, 2)
	assert.Equal(t, "Yoga", got[0].ModalityName)
	assert.Equal(t, []BookedClientDTO{{ID: "c1", Name: "Ana"}, {ID: "gone"}}, got[0].Booked)
	assert.True(t, got[0].Full)
	assert.Empty(t, got[1].ModalityName)
	assert.Empty(t, got[1].Booked)
	assert.False(t, got[1].Full)
}

func TestNewClientRoster(t *testing.T) {
	clients := []models.Client{{ID: "c1", Name: "Ana"}, {ID: "c2", Name: "Bruno"}}
	got := NewClientRoster(clients, map[string]domain.Status{"c1": domain.StatusPaid, "c2": domain.StatusOverdue})

	assert.Equal(t, domain.StatusPaid, got[0].Status)
	assert.Equal(t, "Bruno", got[1].Name)
	assert.Equal(t, domain.StatusOverdue, got[1].Status)
}
