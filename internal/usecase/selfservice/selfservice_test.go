package selfservice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/memory"
)

const (
	tenant  = "owner"
	account = "member"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

type SelfServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *repository.GymStoreRepository
	client   *models.Client
	other    *models.Client
	modality *models.Modality
	past     *models.Shift
	full     *models.Shift
	open     *models.Shift
}

func (s *SelfServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = repository.NewGymStoreRepository(memory.New())

	_, err := s.repo.RegisterAccount(s.ctx, tenant, "owner@gym.com", func(first bool) models.Role {
		return domain.AssignRole(first, "", nil)
	})
	s.Require().NoError(err)

	s.modality = &models.Modality{Name: "Spinning", Price: decimal.NewFromInt(90)}
	s.Require().NoError(s.repo.CreateModality(s.ctx, tenant, s.modality))

	s.client = &models.Client{Name: "Ana", AssociatedUserUID: account}
	s.Require().NoError(s.repo.CreateClient(s.ctx, tenant, s.client))
	s.other = &models.Client{Name: "Bruno"}
	s.Require().NoError(s.repo.CreateClient(s.ctx, tenant, s.other))

	s.past = s.shift("2024-03-14", 2, s.client.ID)
	s.full = s.shift("2024-03-20", 1, s.other.ID)
	s.open = s.shift("2024-03-21", 2)
}

func TestSelfServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SelfServiceTestSuite))
}

func (s *SelfServiceTestSuite) shift(date string, capacity int, booked ...string) *models.Shift {
	if booked == nil {
		booked = []string{}
	}
	sh := &models.Shift{Date: date, Time: "07:00", Capacity: capacity, ModalityID: s.modality.ID, BookedClients: booked}
	s.Require().NoError(s.repo.CreateShift(s.ctx, tenant, sh))
	return sh
}

func (s *SelfServiceTestSuite) overview() *Overview {
	uc := NewGetOverview(s.repo)
	uc.now = fixedNow
	ov, err := uc.Execute(s.ctx, account)
	s.Require().NoError(err)
	return ov
}

func (s *SelfServiceTestSuite) bookShift() *BookShift {
	uc := NewBookShift(s.repo, nil, 3)
	uc.now = fixedNow
	return uc
}

func ids(slots []Slot) []string {
	out := []string{}
	for _, sl := range slots {
		out = append(out, sl.ID)
	}
	return out
}

func (s *SelfServiceTestSuite) TestOverview() {
	ov := s.overview()

	s.Equal(tenant, ov.TenantID)
	s.Equal(s.client.ID, ov.Client.ID)
	s.Equal(domain.StatusOverdue, ov.Status)
	s.Empty(ov.Booked)
	s.Equal([]string{s.open.ID}, ids(ov.Available))
	s.Len(ov.Modalities, 1)
}

func (s *SelfServiceTestSuite) TestBookCancelAndStatus() {
	s.Require().NoError(s.bookShift().Execute(s.ctx, account, s.open.ID))

	ov := s.overview()
	s.Equal([]string{s.open.ID}, ids(ov.Booked))
	s.True(ov.Booked[0].Mine)
	s.Equal(1, ov.Booked[0].Booked)
	s.Empty(ov.Available)

	err := s.bookShift().Execute(s.ctx, account, s.full.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeCapacityExceeded))

	p := &models.Payment{ClientID: s.client.ID, Amount: decimal.NewFromInt(90), PaymentMonth: 3, PaymentYear: 2024}
	s.Require().NoError(s.repo.CreatePayment(s.ctx, tenant, p))
	s.Equal(domain.StatusPaid, s.overview().Status)

	s.Require().NoError(NewCancelShift(s.repo, nil, 3).Execute(s.ctx, account, s.open.ID))
	s.Require().NoError(NewCancelShift(s.repo, nil, 3).Execute(s.ctx, account, s.open.ID))

	got, err := s.repo.GetShift(s.ctx, tenant, s.open.ID)
	s.Require().NoError(err)
	s.Empty(got.BookedClients)
}

func (s *SelfServiceTestSuite) TestBookStartedShiftRejected() {
	err := s.bookShift().Execute(s.ctx, account, s.past.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeShiftStarted))

	sameDay := s.shift("2024-03-15", 2)
	err = s.bookShift().Execute(s.ctx, account, sameDay.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeShiftStarted))

	later := &models.Shift{Date: "2024-03-15", Time: "18:00", Capacity: 2, ModalityID: s.modality.ID, BookedClients: []string{}}
	s.Require().NoError(s.repo.CreateShift(s.ctx, tenant, later))
	s.Require().NoError(s.bookShift().Execute(s.ctx, account, later.ID))

	err = s.bookShift().Execute(s.ctx, account, "ghost")
	s.True(httperr.IsBusiness(err, httperr.CodeNotFound))
}

func (s *SelfServiceTestSuite) TestCancelNeverTouchesOthers() {
	s.Require().NoError(NewCancelShift(s.repo, nil, 3).Execute(s.ctx, account, s.full.ID))

	got, err := s.repo.GetShift(s.ctx, tenant, s.full.ID)
	s.Require().NoError(err)
	s.Equal([]string{s.other.ID}, got.BookedClients)
}

func (s *SelfServiceTestSuite) TestChangeModality() {
	uc := NewChangeModality(s.repo, nil)

	s.Equal(httperr.ErrValidation("modalityId"), uc.Execute(s.ctx, account, "ghost"))
	s.Require().NoError(uc.Execute(s.ctx, account, s.modality.ID))
	s.Equal(s.modality.ID, s.overview().Client.CurrentModalityID)
}

func (s *SelfServiceTestSuite) TestUnassociatedAccount() {
	_, err := NewGetOverview(s.repo).Execute(s.ctx, "stranger")
	s.True(httperr.IsBusiness(err, httperr.CodeNotAssociated))

	err = s.bookShift().Execute(s.ctx, "stranger", s.open.ID)
	s.True(httperr.IsBusiness(err, httperr.CodeNotAssociated))
}

func (s *SelfServiceTestSuite) TestWatchFollowsBookings() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	uc := NewWatchOverview(s.repo)
	uc.now = fixedNow
	ch, err := uc.Execute(ctx, account)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		select {
		case ov := <-ch:
			return len(ov.Available) == 1 && len(ov.Booked) == 0
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	s.Require().NoError(s.bookShift().Execute(s.ctx, account, s.open.ID))

	s.Eventually(func() bool {
		select {
		case ov := <-ch:
			return len(ov.Booked) == 1 && ov.Booked[0].ID == s.open.ID
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	s.Eventually(func() bool {
		_, ok := <-ch
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
