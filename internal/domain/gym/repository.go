// Package gym holds the rules of the gym core: validation, booking, payment
// status and role assignment. Persistence is behind the interfaces below.
package gym

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// Lookups of a single entity fail with the not_found business error. Writes
// guarded by a version fail with store.ErrConflict when the stored document
// moved on.

type AccountRepository interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// RegisterAccount returns the existing account, or creates it with the
	// role chosen by roleFor, which learns whether this is the first account
	// in the registry. The check and the write are atomic.
	RegisterAccount(
		ctx context.Context,
		accountID string,
		email string,
		roleFor func(first bool) models.Role,
	) (*models.Account, error)

	ListAdminAccounts(ctx context.Context) ([]models.Account, error)

	GetBrand(ctx context.Context, tenantID string) (*models.BrandSettings, error)
	SetBrand(ctx context.Context, tenantID string, brand models.BrandSettings) error
}

type ModalityRepository interface {
	ListModalities(ctx context.Context, tenantID string) ([]models.Modality, error)
	GetModality(ctx context.Context, tenantID, id string) (*models.Modality, error)
	CreateModality(ctx context.Context, tenantID string, m *models.Modality) error
	UpdateModality(ctx context.Context, tenantID string, m *models.Modality) error
	DeleteModality(ctx context.Context, tenantID, id string) error
}

type ShiftRepository interface {
	ListShifts(ctx context.Context, tenantID string) ([]models.Shift, error)
	GetShift(ctx context.Context, tenantID, id string) (*models.Shift, error)
	CreateShift(ctx context.Context, tenantID string, s *models.Shift) error

	// SaveShift writes s only if the stored shift is still at s.Version.
	SaveShift(ctx context.Context, tenantID string, s *models.Shift) error

	DeleteShift(ctx context.Context, tenantID, id string) error
	ShiftsUsingModality(ctx context.Context, tenantID, modalityID string) ([]models.Shift, error)
	ShiftsBookedBy(ctx context.Context, tenantID, clientID string) ([]models.Shift, error)

	// WatchShifts streams the full shift list on every change.
	WatchShifts(ctx context.Context, tenantID string) (<-chan []models.Shift, error)
}

type ClientRepository interface {
	ListClients(ctx context.Context, tenantID string) ([]models.Client, error)
	GetClient(ctx context.Context, tenantID, id string) (*models.Client, error)

	// CreateClient and UpdateClient keep the account link index in step with
	// AssociatedUserUID; linking an account already linked elsewhere fails
	// with account_already_linked.
	CreateClient(ctx context.Context, tenantID string, c *models.Client) error
	UpdateClient(ctx context.Context, tenantID string, c *models.Client) error

	// DeleteClient removes the client and its account link, nothing else.
	DeleteClient(ctx context.Context, tenantID, id string) error

	SetClientModality(ctx context.Context, tenantID, clientID, modalityID string) error
	ClientsLinkedTo(ctx context.Context, tenantID, accountID string) ([]models.Client, error)
}

type PaymentRepository interface {
	ListPayments(ctx context.Context, tenantID string) ([]models.Payment, error)
	ListClientPayments(ctx context.Context, tenantID, clientID string) ([]models.Payment, error)
	CreatePayment(ctx context.Context, tenantID string, p *models.Payment) error
	DeletePayment(ctx context.Context, tenantID, id string) error
	WatchClientPayments(ctx context.Context, tenantID, clientID string) (<-chan []models.Payment, error)
}

type LinkRepository interface {
	GetAccountLink(ctx context.Context, accountID string) (*models.AccountLink, error)
	SetAccountLink(ctx context.Context, link models.AccountLink) error
}

type Repository interface {
	AccountRepository
	ModalityRepository
	ShiftRepository
	ClientRepository
	PaymentRepository
	LinkRepository
}
