// Package users provides the PostgreSQL-backed repository for user accounts
// and their coin balances.
package users

import (
	"context"

	"github.com/printee/printee/internal/models"
)

// Repository is the persistence contract for user accounts. Debit and
// Credit are the only balance mutators; Debit is guarded so a balance can
// never go negative even under concurrent callers.
type Repository interface {
	Create(ctx context.Context, externalID string, profile models.Profile) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Deactivate(ctx context.Context, id int64) error
	Debit(ctx context.Context, id int64, amount int64) (int64, error)
	Credit(ctx context.Context, id int64, amount int64) (int64, error)
}
