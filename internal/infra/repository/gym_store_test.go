package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/memory"
)

type GymStoreRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	repo  *GymStoreRepository
}

func (s *GymStoreRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.repo = NewGymStoreRepository(s.store)
}

func TestGymStoreRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GymStoreRepositoryTestSuite))
}

func roleFor(first bool) models.Role {
	return domain.AssignRole(first, "", nil)
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (s *GymStoreRepositoryTestSuite) TestFirstAccountIsAdminOthersClients() {
	owner, err := s.repo.RegisterAccount(s.ctx, "owner", "owner@gym.com", roleFor)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, owner.Role)

	member, err := s.repo.RegisterAccount(s.ctx, "member", "m@gym.com", roleFor)
	s.Require().NoError(err)
	s.Equal(models.RoleClient, member.Role)

	again, err := s.repo.RegisterAccount(s.ctx, "owner", "changed@gym.com", roleFor)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, again.Role)
	s.Equal("owner@gym.com", again.Email)

	admins, err := s.repo.ListAdminAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(admins, 1)
	s.Equal("owner", admins[0].ID)
}

func (s *GymStoreRepositoryTestSuite) TestConcurrentFirstSignInsYieldOneAdmin() {
	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		go func() {
			defer wg.Done()
			_, err := s.repo.RegisterAccount(s.ctx, id, id+"@gym.com", roleFor)
			s.NoError(err)
		}()
	}
	wg.Wait()

	admins, err := s.repo.ListAdminAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(admins, 1)
}

func (s *GymStoreRepositoryTestSuite) TestAdminGetsEmptyBrand() {
	_, err := s.repo.RegisterAccount(s.ctx, "owner", "owner@gym.com", roleFor)
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, "tenants/owner/settings/brand")
	s.Require().NoError(err)

	brand, err := s.repo.GetBrand(s.ctx, "owner")
	s.Require().NoError(err)
	s.Empty(brand.ImageURL)

	s.Require().NoError(s.repo.SetBrand(s.ctx, "owner", models.BrandSettings{ImageURL: "https://cdn/logo.webp"}))
	brand, err = s.repo.GetBrand(s.ctx, "owner")
	s.Require().NoError(err)
	s.Equal("https://cdn/logo.webp", brand.ImageURL)

	none, err := s.repo.GetBrand(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(none.ImageURL)
}

func (s *GymStoreRepositoryTestSuite) TestGetAccountNotFound() {
	_, err := s.repo.GetAccount(s.ctx, "ghost")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

// --------------------------------------------------
// Shifts
// --------------------------------------------------

func (s *GymStoreRepositoryTestSuite) TestSaveShiftIsVersioned() {
	sh := &models.Shift{Date: "2024-03-11", Time: "07:00", Capacity: 2, ModalityID: "m1"}
	s.Require().NoError(s.repo.CreateShift(s.ctx, "t1", sh))
	s.NotEmpty(sh.ID)
	s.NotZero(sh.Version)
	s.Equal([]string{}, sh.BookedClients)

	stale := *sh
	sh.BookedClients = []string{"c1"}
	s.Require().NoError(s.repo.SaveShift(s.ctx, "t1", sh))
	s.NotEqual(stale.Version, sh.Version)

	stale.BookedClients = []string{"c2"}
	s.ErrorIs(s.repo.SaveShift(s.ctx, "t1", &stale), store.ErrConflict)

	got, err := s.repo.GetShift(s.ctx, "t1", sh.ID)
	s.Require().NoError(err)
	s.Equal([]string{"c1"}, got.BookedClients)

	booked, err := s.repo.ShiftsBookedBy(s.ctx, "t1", "c1")
	s.Require().NoError(err)
	s.Len(booked, 1)

	using, err := s.repo.ShiftsUsingModality(s.ctx, "t1", "m1")
	s.Require().NoError(err)
	s.Len(using, 1)
}

func (s *GymStoreRepositoryTestSuite) TestListShiftsSorted() {
	for _, in := range []models.Shift{
		{Date: "2024-03-12", Time: "07:00", Capacity: 1, ModalityID: "m1"},
		{Date: "2024-03-11", Time: "18:00", Capacity: 1, ModalityID: "m1"},
		{Date: "2024-03-11", Time: "06:00", Capacity: 1, ModalityID: "m1"},
	} {
		sh := in
		s.Require().NoError(s.repo.CreateShift(s.ctx, "t1", &sh))
	}

	shifts, err := s.repo.ListShifts(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(shifts, 3)
	s.Equal("2024-03-11 06:00", shifts[0].SortKey())
	s.Equal("2024-03-12 07:00", shifts[2].SortKey())
}

// --------------------------------------------------
// Clients and the account link index
// --------------------------------------------------

func (s *GymStoreRepositoryTestSuite) TestCreateClientWritesLink() {
	c := &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"}
	s.Require().NoError(s.repo.CreateClient(s.ctx, "t1", c))

	link, err := s.repo.GetAccountLink(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Equal("t1", link.TenantID)
	s.Equal(c.ID, link.ClientID)
}

func (s *GymStoreRepositoryTestSuite) TestAccountLinkedOnceAcrossTenants() {
	s.Require().NoError(s.repo.CreateClient(s.ctx, "t1", &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"}))

	err := s.repo.CreateClient(s.ctx, "t2", &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"})
	s.True(httperr.IsBusiness(err, httperr.CodeAccountAlreadyLinked))

	err = s.repo.CreateClient(s.ctx, "t1", &models.Client{Name: "Ana 2", AssociatedUserUID: "acc-1"})
	s.True(httperr.IsBusiness(err, httperr.CodeAccountAlreadyLinked))

	clients, err := s.repo.ListClients(s.ctx, "t2")
	s.Require().NoError(err)
	s.Empty(clients)
}

func (s *GymStoreRepositoryTestSuite) TestUpdateClientMovesLink() {
	c := &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"}
	s.Require().NoError(s.repo.CreateClient(s.ctx, "t1", c))
	s.Require().NoError(s.repo.SetClientModality(s.ctx, "t1", c.ID, "m1"))

	upd := &models.Client{ID: c.ID, Name: "Ana B", AssociatedUserUID: "acc-2"}
	s.Require().NoError(s.repo.UpdateClient(s.ctx, "t1", upd))

	_, err := s.repo.GetAccountLink(s.ctx, "acc-1")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	link, err := s.repo.GetAccountLink(s.ctx, "acc-2")
	s.Require().NoError(err)
	s.Equal(c.ID, link.ClientID)

	got, err := s.repo.GetClient(s.ctx, "t1", c.ID)
	s.Require().NoError(err)
	s.Equal("Ana B", got.Name)
	s.Equal("m1", got.CurrentModalityID)
	s.Equal(c.CreatedAt.Unix(), got.CreatedAt.Unix())

	unlink := &models.Client{ID: c.ID, Name: "Ana B"}
	s.Require().NoError(s.repo.UpdateClient(s.ctx, "t1", unlink))
	_, err = s.repo.GetAccountLink(s.ctx, "acc-2")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

func (s *GymStoreRepositoryTestSuite) TestUpdateMissingClient() {
	err := s.repo.UpdateClient(s.ctx, "t1", &models.Client{ID: "ghost", Name: "X"})
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

func (s *GymStoreRepositoryTestSuite) TestDeleteClientReleasesLink() {
	c := &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"}
	s.Require().NoError(s.repo.CreateClient(s.ctx, "t1", c))
	s.Require().NoError(s.repo.DeleteClient(s.ctx, "t1", c.ID))

	_, err := s.repo.GetClient(s.ctx, "t1", c.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
	_, err = s.repo.GetAccountLink(s.ctx, "acc-1")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	s.Require().NoError(s.repo.CreateClient(s.ctx, "t2", &models.Client{Name: "Ana", AssociatedUserUID: "acc-1"}))
}

// --------------------------------------------------
// Modalities and payments
// --------------------------------------------------

func (s *GymStoreRepositoryTestSuite) TestModalityRoundTrip() {
	m := &models.Modality{Name: "Yoga", Price: decimal.RequireFromString("89.90")}
	s.Require().NoError(s.repo.CreateModality(s.ctx, "t1", m))

	got, err := s.repo.GetModality(s.ctx, "t1", m.ID)
	s.Require().NoError(err)
	s.True(got.Price.Equal(decimal.RequireFromString("89.90")))

	s.Require().NoError(s.repo.DeleteModality(s.ctx, "t1", m.ID))
	err = s.repo.UpdateModality(s.ctx, "t1", m)
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

func (s *GymStoreRepositoryTestSuite) TestPaymentsByClient() {
	for _, p := range []models.Payment{
		{ClientID: "c1", Amount: decimal.NewFromInt(100), PaymentMonth: 2, PaymentYear: 2024},
		{ClientID: "c1", Amount: decimal.NewFromInt(100), PaymentMonth: 3, PaymentYear: 2024},
		{ClientID: "c2", Amount: decimal.NewFromInt(100), PaymentMonth: 3, PaymentYear: 2024},
	} {
		pay := p
		s.Require().NoError(s.repo.CreatePayment(s.ctx, "t1", &pay))
		s.False(pay.RecordedAt.IsZero())
	}

	c1, err := s.repo.ListClientPayments(s.ctx, "t1", "c1")
	s.Require().NoError(err)
	s.Require().Len(c1, 2)
	s.Equal(3, c1[0].PaymentMonth)

	all, err := s.repo.ListPayments(s.ctx, "t1")
	s.Require().NoError(err)
	s.Len(all, 3)
}
