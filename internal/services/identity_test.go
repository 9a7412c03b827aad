package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/printee/printee/internal/auth"
	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/config"
	"github.com/printee/printee/internal/models"
)

func newIdentityService(t *testing.T, rm *fakeRepoManager) *IdentityService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SecretKey:                    "k",
		SessionTokenValidityDuration: time.Hour,
	}
	return NewIdentityService(db, rm, cfg)
}

func TestResolveOrCreate_FirstSight(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newIdentityService(t, rm)

	user, token, err := s.ResolveOrCreate(context.Background(), "ext-1", models.Profile{FirstName: "Ada"})
	if err != nil {
		t.Fatalf("ResolveOrCreate error: %v", err)
	}
	if user.Coins != 0 || !user.IsActive {
		t.Fatalf("new user not zero-balance active: %+v", user)
	}

	claims, err := auth.ParseToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.ExternalID != "ext-1" {
		t.Fatalf("claims do not bind identity: %+v", claims)
	}
}

func TestResolveOrCreate_Existing(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		user: &models.User{ID: 5, ExternalID: "ext-1", Coins: 7, IsActive: true},
	}}
	s := newIdentityService(t, rm)

	user, _, err := s.ResolveOrCreate(context.Background(), "ext-1", models.Profile{})
	if err != nil {
		t.Fatalf("ResolveOrCreate error: %v", err)
	}
	if user.ID != 5 || user.Coins != 7 {
		t.Fatalf("existing user not returned: %+v", user)
	}
}

func TestResolveOrCreate_Inactive(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		user: &models.User{ID: 5, ExternalID: "ext-1", IsActive: false},
	}}
	s := newIdentityService(t, rm)

	_, _, err := s.ResolveOrCreate(context.Background(), "ext-1", models.Profile{})
	if !errors.Is(err, common.ErrUserInactive) {
		t.Fatalf("want ErrUserInactive, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newIdentityService(t, &fakeRepoManager{u: &fakeUsersRepo{}})

	if _, err := s.Get(context.Background(), 99); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{
		user: &models.User{ID: 5, ExternalID: "ext-1", IsActive: true},
	}}
	s := newIdentityService(t, rm)

	if err := s.Deactivate(context.Background(), 5); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if rm.u.user.IsActive {
		t.Fatalf("user still active")
	}

	// Deactivated users cannot re-resolve.
	if _, _, err := s.ResolveOrCreate(context.Background(), "ext-1", models.Profile{}); !errors.Is(err, common.ErrUserInactive) {
		t.Fatalf("want ErrUserInactive after deactivate, got %v", err)
	}
}
