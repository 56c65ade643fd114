package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthAccountKind tags which table a resolved identity landed in.
type OAuthAccountKind string

const (
	OAuthAccountAdmin OAuthAccountKind = "admin"
	OAuthAccountUser  OAuthAccountKind = "user"
	OAuthAccountNone  OAuthAccountKind = "none"
)

// OAuthResult is the outcome of resolving an external identity.
type OAuthResult struct {
	Kind      OAuthAccountKind
	Admin     *models.Admin
	User      *models.User
	Token     string
	ExpiresAt time.Time
	IsNewUser bool
}

// OAuthService resolves verified external identities to local accounts.
//
// The admin table always wins: when the verified email belongs to an
// admin, the session is an admin session even if a customer row shares
// the email.
type OAuthService struct {
	db           *gorm.DB
	verifiers    map[string]oauth.Verifier
	adminRepo    repository.AdminRepository
	userRepo     repository.UserRepository
	identityRepo repository.UserIdentityRepository
	authService  *AuthService
	userAuth     *UserAuthService
}

// NewOAuthService creates the OAuth resolver.
func NewOAuthService(
	db *gorm.DB,
	verifiers []oauth.Verifier,
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	identityRepo repository.UserIdentityRepository,
	authService *AuthService,
	userAuth *UserAuthService,
) *OAuthService {
	byProvider := make(map[string]oauth.Verifier, len(verifiers))
	for _, v := range verifiers {
		if v != nil {
			byProvider[v.Provider()] = v
		}
	}
	return &OAuthService{
		db:           db,
		verifiers:    byProvider,
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		identityRepo: identityRepo,
		authService:  authService,
		userAuth:     userAuth,
	}
}

// ResolveLogin signs an existing account in with a provider credential.
// An unknown email is a NotRegistered failure, never an implicit signup.
func (s *OAuthService) ResolveLogin(ctx context.Context, provider, credential string) (*OAuthResult, error) {
	identity, err := s.verify(ctx, provider, credential)
	if err != nil {
		return nil, err
	}

	if result, err := s.resolveAdmin(identity); err != nil {
		return nil, err
	} else if result != nil {
		return result, nil
	}

	user, err := s.userRepo.GetByEmail(identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotRegistered
	}
	return s.finishUserSession(user, identity, false)
}

// ResolveSignup signs in with a provider credential, creating the
// account when the email is new. Signup on an existing email is
// idempotent and simply returns the existing account's session.
func (s *OAuthService) ResolveSignup(ctx context.Context, provider, credential string) (*OAuthResult, error) {
	identity, err := s.verify(ctx, provider, credential)
	if err != nil {
		return nil, err
	}

	if result, err := s.resolveAdmin(identity); err != nil {
		return nil, err
	} else if result != nil {
		return result, nil
	}

	user, err := s.userRepo.GetByEmail(identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.finishUserSession(user, identity, false)
	}

	user, err = s.createUserWithIdentity(identity)
	if err != nil {
		return nil, err
	}
	return s.finishUserSession(user, identity, true)
}

// ResolveAdmin signs an admin in with a provider credential. Emails
// without an admin row fail; no user fallback.
func (s *OAuthService) ResolveAdmin(ctx context.Context, provider, credential string) (*OAuthResult, error) {
	identity, err := s.verify(ctx, provider, credential)
	if err != nil {
		return nil, err
	}

	result, err := s.resolveAdmin(identity)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrAdminNotFound
	}
	return result, nil
}

func (s *OAuthService) verify(ctx context.Context, provider, credential string) (*oauth.Identity, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("oauth provider %q not configured", provider)
	}
	return verifier.Verify(ctx, credential)
}

// resolveAdmin returns a non-nil result when the email maps to an
// admin, nil when it does not.
func (s *OAuthService) resolveAdmin(identity *oauth.Identity) (*OAuthResult, error) {
	admin, err := s.adminRepo.GetByEmail(identity.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}

	token, expiresAt, err := s.authService.GenerateJWT(admin)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}

	return &OAuthResult{
		Kind:      OAuthAccountAdmin,
		Admin:     admin,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// createUserWithIdentity inserts the user and its identity link in one
// transaction. The password is an unguessable placeholder; OAuth users
// set a real one later if they want password login.
func (s *OAuthService) createUserWithIdentity(identity *oauth.Identity) (*models.User, error) {
	placeholder, err := randomPasswordHash()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:           identity.Email,
		DisplayName:     identity.Name,
		Picture:         identity.Picture,
		PasswordHash:    placeholder,
		Status:          constants.UserStatusActive,
		EmailVerifiedAt: &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		return s.identityRepo.WithTx(tx).Create(&models.UserIdentity{
			UserID:    user.ID,
			Provider:  identity.Provider,
			SubjectID: identity.SubjectID,
			Email:     identity.Email,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *OAuthService) finishUserSession(user *models.User, identity *oauth.Identity, isNew bool) (*OAuthResult, error) {
	if err := CheckAccountStatus(user); err != nil {
		return nil, err
	}

	if err := s.ensureIdentityLink(user, identity); err != nil {
		return nil, err
	}
	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}

	user, token, expiresAt, err := s.userAuth.IssueSession(user)
	if err != nil {
		return nil, err
	}

	return &OAuthResult{
		Kind:      OAuthAccountUser,
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		IsNewUser: isNew,
	}, nil
}

// ensureIdentityLink creates the (provider, subject) row if absent.
func (s *OAuthService) ensureIdentityLink(user *models.User, identity *oauth.Identity) error {
	existing, err := s.identityRepo.GetByProviderSubject(identity.Provider, identity.SubjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.identityRepo.Create(&models.UserIdentity{
		UserID:    user.ID,
		Provider:  identity.Provider,
		SubjectID: identity.SubjectID,
		Email:     identity.Email,
	})
}

func randomPasswordHash() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
