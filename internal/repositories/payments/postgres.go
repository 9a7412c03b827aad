package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
)

const uniqueViolationCode = "23505"

// PostgresRepository implements credited-payment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, payment *models.CreditedPayment) error {
	query := `
		INSERT INTO credited_payments (payment_intent_id, user_id, coins)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query,
		payment.PaymentIntentID, payment.UserID, payment.Coins)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrAlreadyCredited
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, paymentIntentID string) (*models.CreditedPayment, error) {
	query := `
		SELECT payment_intent_id, user_id, coins, credited_at
		FROM credited_payments
		WHERE payment_intent_id = $1
	`
	payment := &models.CreditedPayment{}
	err := r.db.QueryRowContext(ctx, query, paymentIntentID).Scan(
		&payment.PaymentIntentID, &payment.UserID, &payment.Coins, &payment.CreditedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return payment, nil
}
