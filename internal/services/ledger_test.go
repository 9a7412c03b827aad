package services

import (
	"context"
	"errors"
	"testing"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/models"
)

func TestLedgerDebit_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{user: &models.User{ID: 1, Coins: 10, IsActive: true}}}
	s := NewLedgerService(db, rm)

	balance, err := s.Debit(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("Debit error: %v", err)
	}
	if balance != 6 {
		t.Fatalf("want balance 6, got %d", balance)
	}
}

func TestLedgerDebit_InvalidAmount(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewLedgerService(db, &fakeRepoManager{u: &fakeUsersRepo{user: &models.User{ID: 1, Coins: 10}}})

	for _, amount := range []int64{0, -1} {
		if _, err := s.Debit(context.Background(), 1, amount); !errors.Is(err, common.ErrInvalidAmount) {
			t.Fatalf("amount %d: want ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestLedgerDebit_Insufficient(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{user: &models.User{ID: 1, Coins: 3, IsActive: true}}}
	s := NewLedgerService(db, rm)

	if _, err := s.Debit(context.Background(), 1, 5); !errors.Is(err, common.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if rm.u.user.Coins != 3 {
		t.Fatalf("balance changed on rejected debit: %d", rm.u.user.Coins)
	}
}

func TestLedgerDebit_UserNotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewLedgerService(db, &fakeRepoManager{u: &fakeUsersRepo{}})

	if _, err := s.Debit(context.Background(), 42, 5); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestLedgerCredit(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{user: &models.User{ID: 1, Coins: 3, IsActive: true}}}
	s := NewLedgerService(db, rm)

	balance, err := s.Credit(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Credit error: %v", err)
	}
	if balance != 13 {
		t.Fatalf("want balance 13, got %d", balance)
	}

	if _, err := s.Credit(context.Background(), 1, 0); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
}

func TestLedgerBalance(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{u: &fakeUsersRepo{user: &models.User{ID: 1, Coins: 8, IsActive: true}}}
	s := NewLedgerService(db, rm)

	balance, err := s.Balance(context.Background(), 1)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if balance != 8 {
		t.Fatalf("want balance 8, got %d", balance)
	}

	if _, err := s.Balance(context.Background(), 99); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
