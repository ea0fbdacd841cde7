package gym

import (
	"strings"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// AssignRole picks the permanent role of a new account: the first account
// ever registered owns a gym, and so does any allow-listed email.
func AssignRole(first bool, email string, adminEmails []string) models.Role {
	if first {
		return models.RoleAdmin
	}
	for _, e := range adminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return models.RoleAdmin
		}
	}
	return models.RoleClient
}
