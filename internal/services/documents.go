package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/models"
	"github.com/printee/printee/internal/pdfx"
	"github.com/printee/printee/internal/repositories/repomanager"
	"github.com/printee/printee/internal/storage"
)

// DocumentService owns document records and their backing bytes. All
// operations are scoped to the owning user; a document belonging to someone
// else is reported exactly like a missing one.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore) *DocumentService {
	return &DocumentService{db: db, repomanager: m, blobs: blobs}
}

// Upload stores the file bytes, estimates the page count (best-effort,
// defaulting to 1), and registers the document as unprinted.
func (s *DocumentService) Upload(ctx context.Context, userID int64, filename string, data []byte) (*models.Document, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	key, err := s.blobs.Put(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	doc := &models.Document{
		UserID:     userID,
		Filename:   filename,
		StorageKey: key,
		PageCount:  pdfx.PageCount(data, filename),
	}

	doc, err = s.repomanager.Documents(s.db).Create(ctx, doc)
	if err != nil {
		// Registration failed; don't leave orphaned bytes behind.
		_ = s.blobs.Delete(ctx, key)
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return doc, nil
}

// List returns all of the user's documents, oldest first, printed or not.
func (s *DocumentService) List(ctx context.Context, userID int64) ([]*models.Document, error) {
	return s.repomanager.Documents(s.db).ListByOwner(ctx, userID)
}

// Get returns a single owned document.
func (s *DocumentService) Get(ctx context.Context, documentID, userID int64) (*models.Document, error) {
	return s.repomanager.Documents(s.db).GetByIDAndOwner(ctx, documentID, userID)
}

// Delete removes the stored bytes first and only then the registry record,
// so a storage failure never silently orphans bytes: on ErrStorage the
// record survives and the operation can be retried. Returns the deleted
// document.
func (s *DocumentService) Delete(ctx context.Context, documentID, userID int64) (*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	doc, err := repo.GetByIDAndOwner(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if err := repo.Delete(ctx, documentID, userID); err != nil {
		return nil, err
	}

	return doc, nil
}

// Download returns the stored bytes and the display filename. The caller
// must close the reader.
func (s *DocumentService) Download(ctx context.Context, documentID, userID int64) (io.ReadCloser, string, error) {
	doc, err := s.repomanager.Documents(s.db).GetByIDAndOwner(ctx, documentID, userID)
	if err != nil {
		return nil, "", err
	}

	body, err := s.blobs.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return body, doc.Filename, nil
}
