package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
	"github.com/printee/printee/internal/processor"
	paymentsrepo "github.com/printee/printee/internal/repositories/payments"
	"github.com/printee/printee/internal/repositories/repomanager"
)

// PaymentService bridges the external card processor to the coin ledger. A
// succeeded payment intent is credited exactly once: the credited-payments
// record and the balance credit are written in the same transaction, and a
// duplicate confirm returns the current balance without crediting again.
type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	processor   processor.Processor
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager, p processor.Processor) *PaymentService {
	return &PaymentService{db: db, repomanager: m, processor: p}
}

// Initiate creates a payment intent for the given number of coins and
// returns the client secret the caller uses to finish the card flow
// out-of-band.
func (s *PaymentService) Initiate(ctx context.Context, userID int64, coins int64) (string, error) {
	if coins <= 0 {
		return "", common.ErrInvalidAmount
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", err
	}

	intent, err := s.processor.CreateIntent(ctx, userID, coins)
	if err != nil {
		return "", fmt.Errorf("error creating payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}

// Confirm checks the intent's status with the processor and, if it has
// succeeded, credits the coins carried in its metadata. Returns the user's
// balance after crediting. Calling Confirm again for the same intent id is
// a no-op that returns the current balance.
func (s *PaymentService) Confirm(ctx context.Context, paymentIntentID string) (int64, error) {
	intent, err := s.processor.RetrieveIntent(ctx, paymentIntentID)
	if err != nil {
		return 0, fmt.Errorf("error retrieving payment intent: %w", err)
	}

	if intent.Status != processor.StatusSucceeded {
		return 0, common.ErrPaymentNotCompleted
	}

	var balance int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		record := &models.CreditedPayment{
			PaymentIntentID: intent.ID,
			UserID:          intent.UserID,
			Coins:           intent.Coins,
		}
		if err := s.repomanager.Payments(tx).Record(ctx, record); err != nil {
			return err
		}

		var creditErr error
		balance, creditErr = s.repomanager.Users(tx).Credit(ctx, intent.UserID, intent.Coins)
		return creditErr
	})
	if err != nil {
		if errors.Is(err, paymentsrepo.ErrAlreadyCredited) {
			// Retried confirm; report the balance as it stands.
			user, getErr := s.repomanager.Users(s.db).GetByID(ctx, intent.UserID)
			if getErr != nil {
				return 0, getErr
			}
			return user.Coins, nil
		}
		return 0, err
	}

	return balance, nil
}
