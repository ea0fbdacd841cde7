package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Account is keyed by the identity provider's account id. Admin accounts are
// also tenants: their id is the namespace of every gym document they own.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type BrandSettings struct {
	ImageURL  string    `json:"imageUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegistryMeta marks that the registry already has its first account.
type RegistryMeta struct {
	FirstAccountID string    `json:"firstAccountId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AccountLink is the reverse index account id -> (tenant, client).
type AccountLink struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	ClientID  string    `json:"clientId"`
	UpdatedAt time.Time `json:"updatedAt"`
}
