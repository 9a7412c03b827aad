// Package documents provides the PostgreSQL-backed repository for document
// records. Every read and mutation is scoped to the owning user; a wrong
// owner and a missing row are indistinguishable to callers.
package documents

import (
	"context"

	"github.com/printee/printee/internal/models"
)

// Repository is the persistence contract for documents.
type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	ListByOwner(ctx context.Context, userID int64) ([]*models.Document, error)
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Document, error)
	MarkPrinted(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}
