package gym

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/validators"
)

type ClientInput struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	AssociatedUserUID string `json:"associatedUserUid"`
}

func (in *ClientInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.AssociatedUserUID = strings.TrimSpace(in.AssociatedUserUID)

	if in.Name == "" {
		return httperr.ErrValidation("name")
	}
	if in.Email != "" && !validators.IsEmail(in.Email) {
		return httperr.ErrValidation("email")
	}
	return nil
}

// MatchesSearch is a case-insensitive match on name, phone or email.
func MatchesSearch(c models.Client, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(c.Phone, q) ||
		strings.Contains(strings.ToLower(c.Email), q)
}

func SortClients(clients []models.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
}
