package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
)

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, external_id, first_name, last_name, email, coins, is_active, created_at`

func (r *PostgresRepository) Create(ctx context.Context, externalID string, profile models.Profile) (*models.User, error) {
	query := `
		INSERT INTO users (external_id, first_name, last_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query,
		externalID, profile.FirstName, profile.LastName, profile.Email).
		Scan(&user.ID, &user.ExternalID, &user.FirstName, &user.LastName,
			&user.Email, &user.Coins, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, externalID))
}

// Deactivate flips the activation flag; user rows are never hard-deleted.
func (r *PostgresRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = FALSE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Debit subtracts amount coins and returns the new balance. The guard on
// the UPDATE makes the check-and-subtract a single atomic statement, so
// two concurrent debits cannot both pass the balance check. Zero rows
// means either an unknown user or insufficient coins; the caller
// disambiguates with GetByID.
func (r *PostgresRepository) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	query := `
		UPDATE users SET coins = coins - $1
		WHERE id = $2 AND coins >= $1
		RETURNING coins
	`
	var balance int64
	err := r.db.QueryRowContext(ctx, query, amount, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

// Credit adds amount coins and returns the new balance.
func (r *PostgresRepository) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	query := `
		UPDATE users SET coins = coins + $1
		WHERE id = $2
		RETURNING coins
	`
	var balance int64
	err := r.db.QueryRowContext(ctx, query, amount, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrUserNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.ExternalID, &user.FirstName, &user.LastName,
		&user.Email, &user.Coins, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
