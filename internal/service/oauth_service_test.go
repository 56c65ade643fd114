package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubVerifier struct {
	provider string
	identity *oauth.Identity
	err      error
}

func (v *stubVerifier) Provider() string { return v.provider }

func (v *stubVerifier) Verify(ctx context.Context, token string) (*oauth.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func setupOAuthServiceTest(t *testing.T, identity *oauth.Identity) (*OAuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.User{}, &models.UserIdentity{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "admin-secret"
	cfg.JWT.ExpireHours = 1
	cfg.UserJWT.SecretKey = "user-secret"
	cfg.UserJWT.ExpireHours = 1

	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	identityRepo := repository.NewUserIdentityRepository(db)
	authService := NewAuthService(cfg, adminRepo)
	userAuth := NewUserAuthService(cfg, userRepo)

	verifier := &stubVerifier{provider: constants.IdentityProviderGoogle, identity: identity}
	svc := NewOAuthService(db, []oauth.Verifier{verifier}, adminRepo, userRepo, identityRepo, authService, userAuth)
	return svc, db
}

func googleIdentity(email string) *oauth.Identity {
	return &oauth.Identity{
		Provider:  constants.IdentityProviderGoogle,
		SubjectID: "sub-123",
		Email:     email,
		Name:      "Asha Verma",
		Picture:   "https://lh3.example.com/photo.jpg",
	}
}

func TestResolveLoginAdminPrecedence(t *testing.T) {
	svc, db := setupOAuthServiceTest(t, googleIdentity("ops@ratna.example"))

	if err := db.Create(&models.Admin{Username: "ops", Email: "ops@ratna.example", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	// A customer row with the same email must not shadow the admin.
	if err := db.Create(&models.User{Email: "ops@ratna.example", PasswordHash: "x", Status: constants.UserStatusActive}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	result, err := svc.ResolveLogin(context.Background(), constants.IdentityProviderGoogle, "token")
	if err != nil {
		t.Fatalf("resolve login failed: %v", err)
	}
	if result.Kind != OAuthAccountAdmin {
		t.Fatalf("kind want admin got %s", result.Kind)
	}
	if result.Admin == nil || result.Admin.Username != "ops" {
		t.Fatalf("admin not resolved: %+v", result.Admin)
	}
	if result.Token == "" {
		t.Fatal("expected admin session token")
	}
}

func TestResolveLoginUnknownEmailIsNotRegistered(t *testing.T) {
	svc, _ := setupOAuthServiceTest(t, googleIdentity("new@example.com"))

	_, err := svc.ResolveLogin(context.Background(), constants.IdentityProviderGoogle, "token")
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("want ErrNotRegistered got %v", err)
	}
}

func TestResolveSignupCreatesUserAndIdentityOnce(t *testing.T) {
	svc, db := setupOAuthServiceTest(t, googleIdentity("asha@example.com"))

	first, err := svc.ResolveSignup(context.Background(), constants.IdentityProviderGoogle, "token")
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if first.Kind != OAuthAccountUser || !first.IsNewUser {
		t.Fatalf("first signup want new user, got kind=%s new=%v", first.Kind, first.IsNewUser)
	}
	if first.User.EmailVerifiedAt == nil {
		t.Fatal("oauth signup should mark email verified")
	}
	if first.User.PasswordHash == "" {
		t.Fatal("expected placeholder password hash")
	}

	second, err := svc.ResolveSignup(context.Background(), constants.IdentityProviderGoogle, "token")
	if err != nil {
		t.Fatalf("second signup failed: %v", err)
	}
	if second.IsNewUser {
		t.Fatal("second signup must reuse the existing account")
	}
	if second.User.ID != first.User.ID {
		t.Fatalf("user id want %d got %d", first.User.ID, second.User.ID)
	}

	var userCount, identityCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.UserIdentity{}).Count(&identityCount)
	if userCount != 1 {
		t.Fatalf("user rows want 1 got %d", userCount)
	}
	if identityCount != 1 {
		t.Fatalf("identity rows want 1 got %d", identityCount)
	}
}

func TestResolveLoginBlockedAndSuspendedGates(t *testing.T) {
	cases := []struct {
		status string
		want   error
	}{
		{status: constants.UserStatusBlocked, want: ErrAccountBlocked},
		{status: constants.UserStatusInactive, want: ErrAccountSuspended},
	}
	for _, item := range cases {
		svc, db := setupOAuthServiceTest(t, googleIdentity("gated@example.com"))
		if err := db.Create(&models.User{Email: "gated@example.com", PasswordHash: "x", Status: item.status}).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
		_, err := svc.ResolveLogin(context.Background(), constants.IdentityProviderGoogle, "token")
		if !errors.Is(err, item.want) {
			t.Fatalf("status=%s want %v got %v", item.status, item.want, err)
		}
	}
}

func TestResolveAdminRequiresAdminRow(t *testing.T) {
	svc, db := setupOAuthServiceTest(t, googleIdentity("customer@example.com"))
	if err := db.Create(&models.User{Email: "customer@example.com", PasswordHash: "x", Status: constants.UserStatusActive}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	_, err := svc.ResolveAdmin(context.Background(), constants.IdentityProviderGoogle, "token")
	if !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("want ErrAdminNotFound got %v", err)
	}
}
