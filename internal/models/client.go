package models

import "time"

// Client is a tenant's roster entry, optionally linked to an end-user account.
type Client struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	AssociatedUserUID string `json:"associatedUserUid,omitempty"`
	CurrentModalityID string `json:"currentModalityId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
