package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/models"
)

// PostgresRepository implements document storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (user_id, filename, storage_key, page_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.UserID, doc.Filename, doc.StorageKey, doc.PageCount).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

// ListByOwner returns all of a user's documents, oldest first. Filtering
// into queue (unprinted) versus history is a presentation concern.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.Document, error) {
	query := `
		SELECT id, user_id, filename, storage_key, page_count, printed, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		var item models.Document
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Filename, &item.StorageKey,
			&item.PageCount, &item.Printed, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Document, error) {
	query := `
		SELECT id, user_id, filename, storage_key, page_count, printed, created_at
		FROM documents
		WHERE id = $1 AND user_id = $2
	`
	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&doc.ID, &doc.UserID, &doc.Filename, &doc.StorageKey,
		&doc.PageCount, &doc.Printed, &doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

// MarkPrinted sets the printed flag. The guard on the UPDATE rejects a
// document that is already printed, so a concurrent print of the same
// document loses cleanly inside its transaction.
func (r *PostgresRepository) MarkPrinted(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE documents SET printed = TRUE
		WHERE id = $1 AND user_id = $2 AND printed = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Zero rows: either the document is gone/not owned, or it is already
	// printed. Look again to report the right failure.
	if _, err := r.GetByIDAndOwner(ctx, id, userID); err != nil {
		return err
	}
	return common.ErrAlreadyPrinted
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
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
