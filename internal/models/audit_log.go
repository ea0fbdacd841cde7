package models

import "time"

type AuditLog struct {
	ID string `json:"id"`

	ActorID  string `json:"actorId,omitempty"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID string `json:"entityId,omitempty"`
	Metadata string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
