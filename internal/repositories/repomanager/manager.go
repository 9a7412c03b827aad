// Package repomanager hands out repositories bound to a DBTX, so services
// can run the same repository code against *sql.DB or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/printee/printee/internal/dbx"
	"github.com/printee/printee/internal/repositories/documents"
	"github.com/printee/printee/internal/repositories/payments"
	"github.com/printee/printee/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	Payments(db dbx.DBTX) payments.Repository
}
