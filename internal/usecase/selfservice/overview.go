package selfservice

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
	"github.com/BruksfildServices01/gym-scheduler/internal/usecase/association"
)

// Slot is a shift as a client sees it: other clients' ids are not exposed.
type Slot struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	ModalityID string `json:"modalityId"`
	Capacity   int    `json:"capacity"`
	Booked     int    `json:"booked"`
	Mine       bool   `json:"mine"`
}

type Overview struct {
	TenantID   string               `json:"tenantId"`
	Client     models.Client        `json:"client"`
	Status     domain.Status        `json:"status"`
	Payments   []models.Payment     `json:"payments"`
	Booked     []Slot               `json:"booked"`
	Available  []Slot               `json:"available"`
	Modalities []models.Modality    `json:"modalities"`
	Brand      models.BrandSettings `json:"brand"`
}

type GetOverview struct {
	repo    domain.Repository
	resolve *association.Resolve
	now     func() time.Time
}

func NewGetOverview(repo domain.Repository) *GetOverview {
	return &GetOverview{
		repo:    repo,
		resolve: association.NewResolve(repo),
		now:     timezone.Now,
	}
}

func (uc *GetOverview) Execute(ctx context.Context, accountID string) (*Overview, error) {
	assoc, err := uc.resolve.Execute(ctx, accountID)
	if err != nil {
		return nil, err
	}

	shifts, err := uc.repo.ListShifts(ctx, assoc.TenantID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.ListClientPayments(ctx, assoc.TenantID, assoc.Client.ID)
	if err != nil {
		return nil, err
	}
	return compose(ctx, uc.repo, assoc, shifts, payments, uc.now())
}

// compose builds the view from the given shift and payment snapshots. The
// client, catalog and brand are read fresh.
func compose(
	ctx context.Context,
	repo domain.Repository,
	assoc *association.Association,
	shifts []models.Shift,
	payments []models.Payment,
	now time.Time,
) (*Overview, error) {

	c, err := repo.GetClient(ctx, assoc.TenantID, assoc.Client.ID)
	if err != nil {
		return nil, err
	}
	modalities, err := repo.ListModalities(ctx, assoc.TenantID)
	if err != nil {
		return nil, err
	}
	brand, err := repo.GetBrand(ctx, assoc.TenantID)
	if err != nil {
		return nil, err
	}

	upcoming := domain.Upcoming(shifts, now)

	return &Overview{
		TenantID:   assoc.TenantID,
		Client:     *c,
		Status:     domain.PaymentStatus(payments, c.ID, now),
		Payments:   payments,
		Booked:     slots(domain.BookedBy(upcoming, c.ID), c.ID),
		Available:  slots(domain.Available(upcoming, c.ID), c.ID),
		Modalities: modalities,
		Brand:      *brand,
	}, nil
}

func slots(shifts []models.Shift, clientID string) []Slot {
	out := make([]Slot, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, Slot{
			ID:         s.ID,
			Date:       s.Date,
			Time:       s.Time,
			ModalityID: s.ModalityID,
			Capacity:   s.Capacity,
			Booked:     len(s.BookedClients),
			Mine:       s.IsBooked(clientID),
		})
	}
	return out
}
