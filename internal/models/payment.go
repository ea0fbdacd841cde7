package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is immutable once recorded. RecordedAt is when it was entered, not
// the period it pays for.
type Payment struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentMonth int             `json:"paymentMonth"`
	PaymentYear  int             `json:"paymentYear"`
	RecordedAt   time.Time       `json:"recordedAt"`
}

func (p Payment) Covers(month, year int) bool {
	return p.PaymentMonth == month && p.PaymentYear == year
}
