package gym

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestPaymentStatusWithoutPayments(t *testing.T) {
	assert.Equal(t, StatusOverdue, PaymentStatus(nil, "c1", day(11)))
	assert.Equal(t, StatusPending, PaymentStatus(nil, "c1", day(9)))
	assert.Equal(t, StatusPending, PaymentStatus(nil, "c1", day(10)))
}

func TestPaymentStatusPaidAllMonth(t *testing.T) {
	payments := []models.Payment{{ClientID: "c1", PaymentMonth: 3, PaymentYear: 2024}}

	for _, d := range []int{1, 10, 11, 31} {
		assert.Equal(t, StatusPaid, PaymentStatus(payments, "c1", day(d)), "day %d", d)
	}
}

func TestPaymentStatusIgnoresOtherPeriodsAndClients(t *testing.T) {
	payments := []models.Payment{
		{ClientID: "c1", PaymentMonth: 2, PaymentYear: 2024},
		{ClientID: "c1", PaymentMonth: 3, PaymentYear: 2023},
		{ClientID: "c2", PaymentMonth: 3, PaymentYear: 2024},
	}
	assert.Equal(t, StatusOverdue, PaymentStatus(payments, "c1", day(15)))
}

func TestRosterStatus(t *testing.T) {
	clients := []models.Client{{ID: "c1"}, {ID: "c2"}}
	payments := []models.Payment{
		{ClientID: "c1", PaymentMonth: 3, PaymentYear: 2024},
		{ClientID: "c1", PaymentMonth: 3, PaymentYear: 2024},
	}

	assert.Equal(t, map[string]Status{"c1": StatusPaid, "c2": StatusOverdue}, RosterStatus(clients, payments, day(20)))
	assert.Equal(t, map[string]Status{"c1": StatusPaid, "c2": StatusPending}, RosterStatus(clients, payments, day(2)))
}

func TestPaymentInputValidate(t *testing.T) {
	valid := PaymentInput{ClientID: "c1", Amount: decimal.NewFromInt(120), Month: 3, Year: 2024}
	assert.NoError(t, valid.Validate())

	tests := map[string]func(p *PaymentInput){
		"clientId":     func(p *PaymentInput) { p.ClientID = "" },
		"amount":       func(p *PaymentInput) { p.Amount = decimal.Zero },
		"paymentMonth": func(p *PaymentInput) { p.Month = 13 },
		"paymentYear":  func(p *PaymentInput) { p.Year = 99 },
	}
	for field, mutate := range tests {
		p := valid
		mutate(&p)
		err := p.Validate()
		assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation), field)
		assert.Contains(t, err.Error(), field)
	}

	neg := valid
	neg.Amount = decimal.NewFromFloat(-1.5)
	assert.Error(t, neg.Validate())
}

func TestSortPayments(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ps := []models.Payment{
		{ID: "jan", PaymentMonth: 1, PaymentYear: 2024, RecordedAt: t0},
		{ID: "dec", PaymentMonth: 12, PaymentYear: 2023, RecordedAt: t0},
		{ID: "mar-old", PaymentMonth: 3, PaymentYear: 2024, RecordedAt: t0},
		{ID: "mar-new", PaymentMonth: 3, PaymentYear: 2024, RecordedAt: t0.Add(time.Hour)},
	}
	SortPayments(ps)

	var ids []string
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"mar-new", "mar-old", "jan", "dec"}, ids)
}
