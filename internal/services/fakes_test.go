package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
	documentsrepo "github.com/printee/printee/internal/repositories/documents"
	paymentsrepo "github.com/printee/printee/internal/repositories/payments"
	usersrepo "github.com/printee/printee/internal/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// fakeUsersRepo keeps one user in memory and applies debits/credits to it.
type fakeUsersRepo struct {
	user *models.User

	getErr    error
	createErr error
	debitErr  error
	creditErr error

	debits  []int64
	credits []int64
}

func (f *fakeUsersRepo) Create(ctx context.Context, externalID string, profile models.Profile) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.user = &models.User{
		ID:         1,
		ExternalID: externalID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Email:      profile.Email,
		IsActive:   true,
	}
	return f.user, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user == nil || f.user.ID != id {
		return nil, common.ErrNotFound
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUsersRepo) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user == nil || f.user.ExternalID != externalID {
		return nil, common.ErrNotFound
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUsersRepo) Deactivate(ctx context.Context, id int64) error {
	if f.user == nil || f.user.ID != id {
		return common.ErrNotFound
	}
	f.user.IsActive = false
	return nil
}

func (f *fakeUsersRepo) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	if f.debitErr != nil {
		return 0, f.debitErr
	}
	if f.user == nil || f.user.ID != id || f.user.Coins < amount {
		return 0, common.ErrInsufficientFunds
	}
	f.user.Coins -= amount
	f.debits = append(f.debits, amount)
	return f.user.Coins, nil
}

func (f *fakeUsersRepo) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	if f.creditErr != nil {
		return 0, f.creditErr
	}
	if f.user == nil || f.user.ID != id {
		return 0, common.ErrUserNotFound
	}
	f.user.Coins += amount
	f.credits = append(f.credits, amount)
	return f.user.Coins, nil
}

// fakeDocsRepo keeps one document in memory.
type fakeDocsRepo struct {
	doc *models.Document

	getErr    error
	createErr error
	markErr   error
	deleteErr error
	listErr   error

	deleted bool
}

func (f *fakeDocsRepo) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	doc.ID = 1
	f.doc = doc
	return doc, nil
}

func (f *fakeDocsRepo) ListByOwner(ctx context.Context, userID int64) ([]*models.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.doc == nil || f.doc.UserID != userID {
		return nil, nil
	}
	return []*models.Document{f.doc}, nil
}

func (f *fakeDocsRepo) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.doc == nil || f.doc.ID != id || f.doc.UserID != userID {
		return nil, common.ErrNotFound
	}
	d := *f.doc
	return &d, nil
}

func (f *fakeDocsRepo) MarkPrinted(ctx context.Context, id, userID int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.doc == nil || f.doc.ID != id || f.doc.UserID != userID {
		return common.ErrNotFound
	}
	if f.doc.Printed {
		return common.ErrAlreadyPrinted
	}
	f.doc.Printed = true
	return nil
}

func (f *fakeDocsRepo) Delete(ctx context.Context, id, userID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.doc == nil || f.doc.ID != id || f.doc.UserID != userID {
		return common.ErrNotFound
	}
	f.doc = nil
	f.deleted = true
	return nil
}

// fakePaymentsRepo records credited intent ids.
type fakePaymentsRepo struct {
	recordErr error
	records   map[string]*models.CreditedPayment
}

func (f *fakePaymentsRepo) Record(ctx context.Context, payment *models.CreditedPayment) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	if f.records == nil {
		f.records = make(map[string]*models.CreditedPayment)
	}
	if _, ok := f.records[payment.PaymentIntentID]; ok {
		return paymentsrepo.ErrAlreadyCredited
	}
	f.records[payment.PaymentIntentID] = payment
	return nil
}

func (f *fakePaymentsRepo) Get(ctx context.Context, paymentIntentID string) (*models.CreditedPayment, error) {
	if p, ok := f.records[paymentIntentID]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	d *fakeDocsRepo
	p *fakePaymentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documentsrepo.Repository { return m.d }
func (m *fakeRepoManager) Payments(db dbx.DBTX) paymentsrepo.Repository   { return m.p }
