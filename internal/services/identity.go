// Package services contains server-side business logic. This file
// implements IdentityService, which maps an external identity reference to
// an internal user account and issues session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/printee/printee/internal/auth"
	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/config"
	"github.com/printee/printee/internal/models"
	"github.com/printee/printee/internal/repositories/repomanager"
)

// IdentityService resolves external identities to internal users, creating
// the account on first sight, and signs session tokens for subsequent
// requests to self-identify.
type IdentityService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	sessionTokenValidityDuration time.Duration
}

// NewIdentityService constructs an IdentityService using repositories and
// server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		sessionTokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// ResolveOrCreate looks the user up by external identity reference and
// creates the account (zero coins, active) if it does not exist yet.
// Deactivated users are rejected with ErrUserInactive. On success the user
// is returned together with a signed session token.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, externalID string, profile models.Profile) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByExternalID(ctx, externalID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, "", fmt.Errorf("error resolving user: %w", err)
		}
		user, err = repo.Create(ctx, externalID, profile)
		if err != nil {
			return nil, "", fmt.Errorf("error creating user: %w", err)
		}
	}

	if !user.IsActive {
		return nil, "", common.ErrUserInactive
	}

	token, err := auth.GenerateToken(user.ID, user.ExternalID, s.jwtSecret, s.sessionTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Get returns the user for an internal id.
func (s *IdentityService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Deactivate disables an account. The row is kept; only the activation
// flag changes.
func (s *IdentityService) Deactivate(ctx context.Context, userID int64) error {
	err := s.repomanager.Users(s.db).Deactivate(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrUserNotFound
	}
	return err
}
