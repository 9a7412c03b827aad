// Package payments provides the PostgreSQL-backed repository for
// credited-payment records, the idempotency gate for payment confirmation.
package payments

import (
	"context"
	"errors"

	"github.com/printee/printee/internal/models"
)

// ErrAlreadyCredited reports that a processor transaction id has already
// been turned into a coin credit.
var ErrAlreadyCredited = errors.New("payment already credited")

// Repository is the persistence contract for credited payments.
type Repository interface {
	// Record inserts an idempotency record for the given payment intent.
	// A duplicate id yields ErrAlreadyCredited.
	Record(ctx context.Context, payment *models.CreditedPayment) error

	// Get returns the record for a payment intent id, or common.ErrNotFound.
	Get(ctx context.Context, paymentIntentID string) (*models.CreditedPayment, error)
}
