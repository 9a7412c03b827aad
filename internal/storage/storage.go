// Package storage abstracts the object store holding uploaded document
// bytes. The lifecycle contract is store-bytes-returns-key, fetch-by-key,
// delete-by-key; document records in the database reference keys only.
package storage

import (
	"context"
	"io"
)

// BlobStore stores and retrieves document bytes by opaque key.
type BlobStore interface {
	// Put uploads the reader's contents under a freshly generated key and
	// returns that key.
	Put(ctx context.Context, r io.Reader, size int64) (string, error)

	// Get returns a reader over the stored bytes. The caller must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored bytes.
	Delete(ctx context.Context, key string) error
}
