package client

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/memory"
)

const tenant = "owner"

var errDisk = errors.New("disk on fire")

// faultyRepo fails payment deletes for the ids in failPayments.
type faultyRepo struct {
	*repository.GymStoreRepository
	failPayments map[string]bool
}

func (r *faultyRepo) DeletePayment(ctx context.Context, tenantID, id string) error {
	if r.failPayments[id] {
		return httperr.Unavailable("deletePayment", errDisk)
	}
	return r.GymStoreRepository.DeletePayment(ctx, tenantID, id)
}

type ClientUseCaseTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *repository.GymStoreRepository
}

func (s *ClientUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.NewGymStoreRepository(memory.New())
}

func TestClientUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(ClientUseCaseTestSuite))
}

func (s *ClientUseCaseTestSuite) add(in domain.ClientInput) *models.Client {
	c, err := NewCreateClient(s.repo, nil).Execute(s.ctx, tenant, tenant, in)
	s.Require().NoError(err)
	return c
}

func (s *ClientUseCaseTestSuite) TestCreateValidates() {
	uc := NewCreateClient(s.repo, nil)

	_, err := uc.Execute(s.ctx, tenant, tenant, domain.ClientInput{Name: " "})
	s.Equal(httperr.ErrValidation("name"), err)

	_, err = uc.Execute(s.ctx, tenant, tenant, domain.ClientInput{Name: "Ana", Email: "not-an-email"})
	s.Equal(httperr.ErrValidation("email"), err)

	c := s.add(domain.ClientInput{Name: "Ana", Email: " ANA@Gym.com "})
	s.Equal("ana@gym.com", c.Email)
	s.NotEmpty(c.ID)
}

func (s *ClientUseCaseTestSuite) TestListSearch() {
	s.add(domain.ClientInput{Name: "carla", Phone: "11 99999-0000"})
	s.add(domain.ClientInput{Name: "Ana", Email: "ana@gym.com"})
	s.add(domain.ClientInput{Name: "Bruno"})

	all, err := NewListClients(s.repo).Execute(s.ctx, tenant, "")
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"Ana", "Bruno", "carla"}, []string{all[0].Name, all[1].Name, all[2].Name})

	found, err := NewListClients(s.repo).Execute(s.ctx, tenant, "99999")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("carla", found[0].Name)

	found, err = NewListClients(s.repo).Execute(s.ctx, tenant, "GYM.COM")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Ana", found[0].Name)
}

func (s *ClientUseCaseTestSuite) TestAccountLinkIsUnique() {
	ana := s.add(domain.ClientInput{Name: "Ana", AssociatedUserUID: "acc-1"})

	_, err := NewCreateClient(s.repo, nil).Execute(s.ctx, tenant, tenant, domain.ClientInput{Name: "Bruno", AssociatedUserUID: "acc-1"})
	s.True(httperr.IsBusiness(err, httperr.CodeAccountAlreadyLinked))

	_, err = NewCreateClient(s.repo, nil).Execute(s.ctx, "other-gym", "other-gym", domain.ClientInput{Name: "Bruno", AssociatedUserUID: "acc-1"})
	s.True(httperr.IsBusiness(err, httperr.CodeAccountAlreadyLinked))

	link, err := s.repo.GetAccountLink(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Equal(tenant, link.TenantID)
	s.Equal(ana.ID, link.ClientID)

	_, err = NewUpdateClient(s.repo, nil).Execute(s.ctx, tenant, tenant, ana.ID, domain.ClientInput{Name: "Ana"})
	s.Require().NoError(err)

	_, err = s.repo.GetAccountLink(s.ctx, "acc-1")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	bruno := s.add(domain.ClientInput{Name: "Bruno", AssociatedUserUID: "acc-1"})
	link, err = s.repo.GetAccountLink(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Equal(bruno.ID, link.ClientID)
}

func (s *ClientUseCaseTestSuite) TestUpdateKeepsModality() {
	m := &models.Modality{Name: "Yoga", Price: decimal.NewFromInt(80)}
	s.Require().NoError(s.repo.CreateModality(s.ctx, tenant, m))
	c := s.add(domain.ClientInput{Name: "Ana"})

	setModality := NewSetClientModality(s.repo, nil)
	s.Equal(httperr.ErrValidation("modalityId"), setModality.Execute(s.ctx, tenant, tenant, c.ID, "ghost"))
	s.Require().NoError(setModality.Execute(s.ctx, tenant, tenant, c.ID, m.ID))

	updated, err := NewUpdateClient(s.repo, nil).Execute(s.ctx, tenant, tenant, c.ID, domain.ClientInput{Name: "Ana Maria"})
	s.Require().NoError(err)
	s.Equal(m.ID, updated.CurrentModalityID)

	got, err := NewGetClient(s.repo).Execute(s.ctx, tenant, c.ID)
	s.Require().NoError(err)
	s.Equal("Ana Maria", got.Name)
	s.Equal(m.ID, got.CurrentModalityID)

	s.Require().NoError(setModality.Execute(s.ctx, tenant, tenant, c.ID, ""))
	got, err = NewGetClient(s.repo).Execute(s.ctx, tenant, c.ID)
	s.Require().NoError(err)
	s.Empty(got.CurrentModalityID)

	_, err = NewUpdateClient(s.repo, nil).Execute(s.ctx, tenant, tenant, "ghost", domain.ClientInput{Name: "X"})
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

// seed gives clientID two payments and a booking, plus data for a
// bystander that must survive the delete.
func (s *ClientUseCaseTestSuite) seed(clientID, bystanderID string) (*models.Shift, []models.Payment) {
	m := &models.Modality{Name: "Spinning", Price: decimal.NewFromInt(90)}
	s.Require().NoError(s.repo.CreateModality(s.ctx, tenant, m))

	sh := &models.Shift{Date: "2024-03-11", Time: "07:00", Capacity: 3, ModalityID: m.ID,
		BookedClients: []string{bystanderID, clientID}}
	s.Require().NoError(s.repo.CreateShift(s.ctx, tenant, sh))

	var payments []models.Payment
	for _, p := range []*models.Payment{
		{ClientID: clientID, Amount: decimal.NewFromInt(90), PaymentMonth: 2, PaymentYear: 2024},
		{ClientID: clientID, Amount: decimal.NewFromInt(90), PaymentMonth: 3, PaymentYear: 2024},
		{ClientID: bystanderID, Amount: decimal.NewFromInt(90), PaymentMonth: 3, PaymentYear: 2024},
	} {
		s.Require().NoError(s.repo.CreatePayment(s.ctx, tenant, p))
		payments = append(payments, *p)
	}
	return sh, payments
}

func (s *ClientUseCaseTestSuite) TestDeleteCascades() {
	ana := s.add(domain.ClientInput{Name: "Ana", AssociatedUserUID: "acc-1"})
	bruno := s.add(domain.ClientInput{Name: "Bruno"})
	sh, _ := s.seed(ana.ID, bruno.ID)

	s.Require().NoError(NewDeleteClient(s.repo, nil, 3).Execute(s.ctx, tenant, tenant, ana.ID))

	_, err := s.repo.GetClient(s.ctx, tenant, ana.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = s.repo.GetAccountLink(s.ctx, "acc-1")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	payments, err := s.repo.ListPayments(s.ctx, tenant)
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(bruno.ID, payments[0].ClientID)

	got, err := s.repo.GetShift(s.ctx, tenant, sh.ID)
	s.Require().NoError(err)
	s.Equal([]string{bruno.ID}, got.BookedClients)
}

func (s *ClientUseCaseTestSuite) TestDeleteReportsPartialCascade() {
	ana := s.add(domain.ClientInput{Name: "Ana"})
	bruno := s.add(domain.ClientInput{Name: "Bruno"})
	sh, payments := s.seed(ana.ID, bruno.ID)

	stuck := payments[0].ID
	repo := &faultyRepo{GymStoreRepository: s.repo, failPayments: map[string]bool{stuck: true}}

	err := NewDeleteClient(repo, nil, 3).Execute(s.ctx, tenant, tenant, ana.ID)

	var partial *httperr.PartialCascadeError
	s.Require().ErrorAs(err, &partial)
	s.Equal("client", partial.Entity)
	s.Equal(ana.ID, partial.EntityID)
	s.Equal([]string{"payment/" + stuck}, partial.Failed)
	s.ErrorIs(err, errDisk)

	_, err = s.repo.GetClient(s.ctx, tenant, ana.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))

	left, err := s.repo.ListClientPayments(s.ctx, tenant, ana.ID)
	s.Require().NoError(err)
	s.Require().Len(left, 1)
	s.Equal(stuck, left[0].ID)

	got, err := s.repo.GetShift(s.ctx, tenant, sh.ID)
	s.Require().NoError(err)
	s.Equal([]string{bruno.ID}, got.BookedClients)
}

func (s *ClientUseCaseTestSuite) TestDeleteMissingClient() {
	err := NewDeleteClient(s.repo, nil, 3).Execute(s.ctx, tenant, tenant, "ghost")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}
