package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
	"github.com/printee/printee/internal/repositories/repomanager"
)

// InsufficientFundsError carries the numbers the client needs to prompt the
// user. errors.Is matches it against common.ErrInsufficientFunds.
type InsufficientFundsError struct {
	Required  int64
	Pages     int
	Available int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient coins. You need %d coins to print %d page(s), but you have %d coins.",
		e.Required, e.Pages, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == common.ErrInsufficientFunds
}

// PrintService coordinates the registry and the ledger for the one atomic
// operation that spends coins: printing a document.
type PrintService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPrintService constructs a PrintService.
func NewPrintService(db *sql.DB, m repomanager.RepositoryManager) *PrintService {
	return &PrintService{db: db, repomanager: m}
}

// Print executes the pay-and-print transaction for an owned document. Cost
// is one coin per page. The debit and the printed-flag flip happen inside a
// single database transaction: both take effect or neither does. An
// already-printed document is rejected with ErrAlreadyPrinted rather than
// billed again.
func (s *PrintService) Print(ctx context.Context, documentID, userID int64) (*models.Document, error) {
	doc, err := s.repomanager.Documents(s.db).GetByIDAndOwner(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc.Printed {
		return nil, common.ErrAlreadyPrinted
	}

	cost := int64(doc.PageCount)

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if user.Coins < cost {
		return nil, &InsufficientFundsError{Required: cost, Pages: doc.PageCount, Available: user.Coins}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// The guarded debit re-checks the balance, so a concurrent print
		// that drained the account between the read above and this point
		// fails here and rolls the transaction back.
		if _, err := s.repomanager.Users(tx).Debit(ctx, userID, cost); err != nil {
			if errors.Is(err, common.ErrInsufficientFunds) {
				return &InsufficientFundsError{Required: cost, Pages: doc.PageCount, Available: user.Coins}
			}
			return err
		}
		return s.repomanager.Documents(tx).MarkPrinted(ctx, documentID, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.repomanager.Documents(s.db).GetByIDAndOwner(ctx, documentID, userID)
}
