package models

import "time"

// CreditedPayment records a processor transaction id that has already been
// turned into a coin credit. Its presence is the idempotency gate that keeps
// a retried confirm call from crediting twice.
type CreditedPayment struct {
	PaymentIntentID string    `json:"paymentIntentId"`
	UserID          int64     `json:"userId"`
	Coins           int64     `json:"coins"`
	CreditedAt      time.Time `json:"creditedAt"`
}
