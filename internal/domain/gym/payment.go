package gym

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// GraceDay is the last day of the month a missing payment is still Pending.
const GraceDay = 10

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

type PaymentInput struct {
	ClientID string          `json:"clientId"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"paymentMonth"`
	Year     int             `json:"paymentYear"`
}

func (in PaymentInput) Validate() error {
	if in.ClientID == "" {
		return httperr.ErrValidation("clientId")
	}
	if !in.Amount.IsPositive() {
		return httperr.ErrValidation("amount")
	}
	if in.Month < 1 || in.Month > 12 {
		return httperr.ErrValidation("paymentMonth")
	}
	if in.Year < 2000 {
		return httperr.ErrValidation("paymentYear")
	}
	return nil
}

// PaymentStatus derives the membership status of clientID for the month of
// today. It must be computed on every read.
func PaymentStatus(payments []models.Payment, clientID string, today time.Time) Status {
	month, year := int(today.Month()), today.Year()
	for _, p := range payments {
		if p.ClientID == clientID && p.Covers(month, year) {
			return StatusPaid
		}
	}
	if today.Day() > GraceDay {
		return StatusOverdue
	}
	return StatusPending
}

// RosterStatus computes the status of every client in one pass.
func RosterStatus(clients []models.Client, payments []models.Payment, today time.Time) map[string]Status {
	month, year := int(today.Month()), today.Year()

	paid := make(map[string]bool, len(payments))
	for _, p := range payments {
		if p.Covers(month, year) {
			paid[p.ClientID] = true
		}
	}

	unpaid := StatusPending
	if today.Day() > GraceDay {
		unpaid = StatusOverdue
	}

	out := make(map[string]Status, len(clients))
	for _, c := range clients {
		if paid[c.ID] {
			out[c.ID] = StatusPaid
		} else {
			out[c.ID] = unpaid
		}
	}
	return out
}

// SortPayments orders newest period first, then newest entry first.
func SortPayments(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		a, b := payments[i], payments[j]
		if a.PaymentYear != b.PaymentYear {
			return a.PaymentYear > b.PaymentYear
		}
		if a.PaymentMonth != b.PaymentMonth {
			return a.PaymentMonth > b.PaymentMonth
		}
		return a.RecordedAt.After(b.RecordedAt)
	})
}
