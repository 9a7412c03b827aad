package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/repositories/repomanager"
)

// LedgerService is the single source of truth for coin balances. Debit and
// Credit report failures synchronously and never retry; the non-negativity
// invariant is enforced by the guarded debit in the repository.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// Balance returns the user's current coin balance.
func (s *LedgerService) Balance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.ErrUserNotFound
		}
		return 0, err
	}
	return user.Coins, nil
}

// Debit removes amount coins from the user's balance and returns the new
// balance. A debit that would overdraw fails with ErrInsufficientFunds and
// leaves the balance unchanged.
func (s *LedgerService) Debit(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}

	balance, err := s.repomanager.Users(s.db).Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, common.ErrInsufficientFunds) {
			// The guarded update cannot tell a poor user from a missing one.
			if _, getErr := s.repomanager.Users(s.db).GetByID(ctx, userID); errors.Is(getErr, common.ErrNotFound) {
				return 0, common.ErrUserNotFound
			}
		}
		return 0, err
	}
	return balance, nil
}

// Credit adds amount coins to the user's balance and returns the new
// balance.
func (s *LedgerService) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}
	return s.repomanager.Users(s.db).Credit(ctx, userID, amount)
}
